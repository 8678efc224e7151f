// Package cli handles command line input for debugging and testing the
// autocomplete index without wiring up the IPC protocol.
package cli

import (
	"bufio"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/suppserve/suppserve/internal/logger"
	"github.com/suppserve/suppserve/pkg/autocomplete"
)

// InputHandler reads queries from stdin and prints suggestions. Input is a
// bare prefix (searched in the default category) or "category prefix".
type InputHandler struct {
	svc             *autocomplete.Service
	defaultCategory string
	limit           int
	log             *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(svc *autocomplete.Service, defaultCategory string, limit int) *InputHandler {
	return &InputHandler{
		svc:             svc,
		defaultCategory: defaultCategory,
		limit:           limit,
		log:             logger.Default("cli"),
	}
}

// Start begins the interface loop. It continuously prompts for input, reads
// a line from stdin, and hands the trimmed input to handleInput. The loop
// terminates on a read error (including Ctrl+D).
func (h *InputHandler) Start() error {
	h.log.Print("suppserve CLI")
	h.log.Printf("categories: %s", strings.Join(h.svc.Categories(), ", "))
	h.log.Print("type a prefix, or \"category prefix\", and press Enter (Ctrl+C to exit):")
	reader := bufio.NewReader(os.Stdin)

	for {
		h.log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput runs a single query and prints the results with timing.
func (h *InputHandler) handleInput(line string) {
	category := h.defaultCategory
	prefix := line
	if cat, rest, found := strings.Cut(line, " "); found {
		if _, ok := h.svc.Stats(cat); ok {
			category, prefix = cat, rest
		}
	}

	start := time.Now()
	results := h.svc.Search(category, prefix, h.limit)
	elapsed := time.Since(start)

	if len(results) == 0 {
		h.log.Printf("no matches in %q (%v)", category, elapsed)
		return
	}
	for i, word := range results {
		h.log.Printf("%2d. %s", i+1, word)
	}
	h.log.Printf("%d result(s) from %q in %v", len(results), category, elapsed)
}
