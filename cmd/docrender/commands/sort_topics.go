package commands

import (
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/docrender/internal/topics"
)

// SortTopicsCmd implements the 'sort-topics' command.
type SortTopicsCmd struct {
	Dir   string   `arg:"" optional:"" help:"Topics directory (defaults to topics.dir)" type:"path"`
	Order []string `help:"Ordering entries (defaults to topics.order)" sep:","`
}

func (s *SortTopicsCmd) Run(_ *Global, root *CLI) error {
	dir, order := s.Dir, s.Order
	if dir == "" || order == nil {
		cfg, err := loadConfig(root)
		if err != nil {
			return err
		}
		if dir == "" {
			dir = cfg.Resolve(cfg.Topics.Dir)
		}
		if order == nil {
			order = cfg.Topics.Order
		}
	}
	return printSortedTopics(os.Stdout, dir, order)
}

func printSortedTopics(w io.Writer, dir string, order []string) error {
	loaded, err := topics.LoadDir(dir)
	if err != nil {
		return err
	}
	if order == nil {
		order = []string{}
	}
	sorted, err := topics.Sort(loaded, order)
	if err != nil {
		return err
	}
	for i, t := range sorted {
		if _, err := fmt.Fprintf(w, "%d. %s (%s)\n", i+1, t.TopicTitle(), t.TopicPath()); err != nil {
			return err
		}
	}
	return nil
}
