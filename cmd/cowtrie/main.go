// Command cowtrie is a small interactive demonstrator for the
// github.com/jaiminpan/cowtrie/trie package. It keeps every version
// produced by a Put or Remove around in memory. get always reads the
// latest version; dump <n> prints the contents of any earlier version,
// which is the easiest way to see the non-mutation property (spec §8 P7)
// first hand: older versions keep holding exactly what they always did.
//
// cowtrie holds nothing durable: closing it discards the whole session,
// which matches the core trie's non-goal of persistence to durable
// storage.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/jaiminpan/cowtrie/trie"
)

var log = log15.New()

func main() {
	app := &cli.App{
		Name:  "cowtrie",
		Usage: "interactive demonstrator for the immutable copy-on-write trie",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "verbosity",
				Value: int(log15.LvlInfo),
				Usage: "log verbosity (0=crit .. 4=debug)",
			},
		},
		Action: runSession,
	}

	if err := app.Run(os.Args); err != nil {
		log.Crit("cowtrie exited with an error", "err", err)
		os.Exit(1)
	}
}

func runSession(c *cli.Context) error {
	log15.Root().SetHandler(log15.LvlFilterHandler(log15.Lvl(c.Int("verbosity")), log15.StderrHandler))

	versions := []*trie.Trie{trie.New()}
	log.Info("session started", "version", 0, "help", "put/get/remove/history/dump/exit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd := fields[0]

		if cmd == "exit" || cmd == "quit" {
			return nil
		}

		next, err := apply(versions, cmd, fields[1:])
		if err != nil {
			log.Error("command failed", "cmd", line, "err", err)
			continue
		}
		if next != nil {
			versions = next
		}
	}
	return scanner.Err()
}

// apply runs one command against the current version history, returning
// the (possibly extended) history, or nil if the command only read state
// and produced no new version.
func apply(versions []*trie.Trie, cmd string, args []string) ([]*trie.Trie, error) {
	latest := versions[len(versions)-1]

	switch cmd {
	case "put":
		if len(args) != 3 {
			return nil, errors.Errorf("usage: put <key> <u32|u64|str> <value>")
		}
		key, typ, raw := args[0], args[1], args[2]
		next, err := putTyped(latest, key, typ, raw)
		if err != nil {
			return nil, err
		}
		versions = append(versions, next)
		log.Info("put", "key", key, "type", typ, "version", len(versions)-1)
		return versions, nil

	case "get":
		if len(args) != 2 {
			return nil, errors.Errorf("usage: get <key> <u32|u64|str>")
		}
		return nil, getTyped(latest, args[0], args[1])

	case "remove":
		if len(args) != 1 {
			return nil, errors.Errorf("usage: remove <key>")
		}
		next := latest.Remove([]byte(args[0]))
		versions = append(versions, next)
		log.Info("remove", "key", args[0], "version", len(versions)-1)
		return versions, nil

	case "history":
		for i := range versions {
			fmt.Printf("version %d\n", i)
		}
		return nil, nil

	case "dump":
		idx := len(versions) - 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 || n >= len(versions) {
				return nil, errors.Errorf("no such version %q", args[0])
			}
			idx = n
		}
		fmt.Print(versions[idx].String())
		return nil, nil

	default:
		return nil, errors.Errorf("unknown command %q", cmd)
	}
}

func putTyped(t *trie.Trie, key, typ, raw string) (*trie.Trie, error) {
	switch typ {
	case "u32":
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %q as u32", raw)
		}
		return trie.Put(t, []byte(key), uint32(v)), nil
	case "u64":
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %q as u64", raw)
		}
		return trie.Put(t, []byte(key), v), nil
	case "str":
		return trie.Put(t, []byte(key), raw), nil
	default:
		return nil, errors.Errorf("unknown type %q (want u32, u64, or str)", typ)
	}
}

func getTyped(t *trie.Trie, key, typ string) error {
	switch typ {
	case "u32":
		v, ok := trie.Get[uint32](t, []byte(key))
		return reportGet(key, v, ok)
	case "u64":
		v, ok := trie.Get[uint64](t, []byte(key))
		return reportGet(key, v, ok)
	case "str":
		v, ok := trie.Get[string](t, []byte(key))
		return reportGet(key, v, ok)
	default:
		return errors.Errorf("unknown type %q (want u32, u64, or str)", typ)
	}
}

func reportGet(key string, value any, ok bool) error {
	if !ok {
		fmt.Printf("%s: absent\n", key)
		return nil
	}
	fmt.Printf("%s: %v\n", key, value)
	return nil
}
