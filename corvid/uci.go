// uci implements the subset of the UCI protocol this engine supports:
// http://wbec-ridderkerk.nl/html/UCIProtocol.html
package main

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/corvidchess/corvid/engine"
)

var errQuit = errors.New("quit")

// UCI drives one Engine from stdin/stdout command lines.
type UCI struct {
	Engine *engine.Engine
}

func NewUCI() *UCI {
	e := engine.NewEngine(engine.DefaultHashTableSizeMB)
	e.Logger = log
	return &UCI{Engine: e}
}

var reCmd = regexp.MustCompile(`^[[:word:]]+\b`)

// Execute dispatches one line of UCI input.
func (u *UCI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd := reCmd.FindString(line)
	if cmd == "" {
		return fmt.Errorf("invalid command line")
	}

	switch cmd {
	case "uci":
		return u.uci()
	case "isready":
		return u.isready()
	case "ucinewgame":
		return u.ucinewgame()
	case "position":
		return u.position(line)
	case "go":
		return u.go_(line)
	case "stop":
		return u.stop()
	case "setoption":
		return u.setoption(line)
	case "debug":
		return nil
	case "quit":
		return errQuit
	default:
		return fmt.Errorf("unhandled command %s", cmd)
	}
}

func (u *UCI) uci() error {
	fmt.Printf("id name corvid %v\n", buildVersion)
	fmt.Printf("id author the corvid authors\n")
	fmt.Printf("option name Hash type spin default %v min 1 max 65536\n", engine.DefaultHashTableSizeMB)
	fmt.Println("uciok")
	return nil
}

func (u *UCI) isready() error {
	fmt.Println("readyok")
	return nil
}

func (u *UCI) ucinewgame() error {
	u.Engine.NewGame()
	return nil
}

func (u *UCI) position(line string) error {
	args := strings.Fields(line)[1:]
	if len(args) == 0 {
		return fmt.Errorf("expected argument for 'position'")
	}

	var pos engine.Position
	var err error
	i := 0
	switch args[0] {
	case "startpos":
		pos = engine.NewPosition()
		i = 1
	case "fen":
		j := 1
		for j < len(args) && args[j] != "moves" {
			j++
		}
		pos, err = engine.PositionFromFEN(strings.Join(args[1:j], " "))
		i = j
	default:
		return fmt.Errorf("unknown position command: %s", args[0])
	}
	if err != nil {
		return err
	}
	u.Engine.SetPosition(pos)

	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("expected 'moves', got %q", args[i])
		}
		for _, s := range args[i+1:] {
			cur := u.Engine.Position()
			m, err := engine.ParseUCIMove(&cur, s)
			if err != nil {
				return err
			}
			u.Engine.DoMove(m)
		}
	}
	return nil
}

var validGoArgs = map[string]bool{
	"wtime": true, "btime": true, "winc": true, "binc": true,
	"movestogo": true, "depth": true, "movetime": true, "infinite": true,
}

func (u *UCI) go_(line string) error {
	var tc engine.TimeControl
	args := strings.Fields(line)[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "infinite":
			tc.Infinite = true
		case "wtime":
			i++
			tc.WTime = parseMillis(args[i])
		case "btime":
			i++
			tc.BTime = parseMillis(args[i])
		case "winc":
			i++
			tc.WInc = parseMillis(args[i])
		case "binc":
			i++
			tc.BInc = parseMillis(args[i])
		case "movestogo":
			i++
			tc.MovesToGo, _ = strconv.Atoi(args[i])
		case "movetime":
			i++
			tc.MoveTime = parseMillis(args[i])
		case "depth":
			i++
			tc.Depth, _ = strconv.Atoi(args[i])
		default:
			if !validGoArgs[args[i]] {
				log.Warningf("ignoring unsupported go argument %q", args[i])
			}
		}
	}

	go func() {
		result := u.Engine.Go(tc)
		printInfo(result)
		if result.BestMove == engine.NullMove {
			fmt.Println("bestmove (none)")
		} else {
			fmt.Printf("bestmove %s\n", result.BestMove.UCI())
		}
	}()
	return nil
}

func parseMillis(s string) time.Duration {
	n, _ := strconv.Atoi(s)
	return time.Duration(n) * time.Millisecond
}

func printInfo(r engine.Result) {
	elapsed := time.Since(r.Stats.StartTime)
	if elapsed <= 0 {
		elapsed = time.Microsecond
	}
	nps := int64(float64(r.Stats.Nodes) / elapsed.Seconds())

	scoreField := fmt.Sprintf("cp %d", r.Score)
	if r.Score >= engine.KnownWinScore {
		scoreField = fmt.Sprintf("mate %d", (engine.MateScore-r.Score+1)/2)
	} else if r.Score <= -engine.KnownWinScore {
		scoreField = fmt.Sprintf("mate %d", -(engine.MateScore+r.Score)/2)
	}

	fmt.Printf("info depth %d score %s nodes %d time %d nps %d pv",
		r.Depth, scoreField, r.Stats.Nodes, elapsed.Milliseconds(), nps)
	for _, m := range r.PV {
		fmt.Printf(" %s", m.UCI())
	}
	fmt.Println()
}

func (u *UCI) stop() error {
	u.Engine.Stop()
	return nil
}

var reOption = regexp.MustCompile(`^setoption\s+name\s+(.+?)(\s+value\s+(.*))?$`)

func (u *UCI) setoption(line string) error {
	m := reOption.FindStringSubmatch(line)
	if m == nil {
		return fmt.Errorf("invalid setoption arguments")
	}
	switch m[1] {
	case "Clear Hash":
		u.Engine.ClearHash()
		return nil
	case "Hash":
		if len(m) < 4 || m[3] == "" {
			return fmt.Errorf("missing setoption value")
		}
		mb, err := strconv.Atoi(m[3])
		if err != nil {
			return err
		}
		u.Engine.SetHashSizeMB(mb)
		return nil
	default:
		return fmt.Errorf("unhandled option %s", m[1])
	}
}
