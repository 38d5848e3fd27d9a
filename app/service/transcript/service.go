package transcript

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"finplay/app/config"

	"github.com/samber/do"
	"github.com/samber/oops"
)

const fileName = "transcript.jsonl"

// Service persists every emitted display message as one JSON line.
// Appends are best-effort from the caller's perspective: a failure here
// must never break a conversation turn.
type Service struct {
	path string
	mu   sync.Mutex
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewAt(cfg.Transcript.Dir)
}

func NewAt(dir string) (*Service, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, oops.Errorf("failed to create transcript dir: %w", err)
	}

	path := filepath.Join(dir, fileName)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, oops.Errorf("failed to open transcript file: %w", err)
	}
	defer file.Close()

	return &Service{path: path}, nil
}

func (s *Service) Append(session, sender, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return oops.Errorf("failed to open transcript file: %w", err)
	}
	defer file.Close()

	data, err := json.Marshal(Record{
		Session: session,
		Sender:  sender,
		Text:    text,
		Time:    time.Now().UTC(),
	})
	if err != nil {
		return oops.Errorf("failed to marshal record: %w", err)
	}

	writer := bufio.NewWriter(file)

	if _, err = writer.WriteString(string(data) + "\n"); err != nil {
		return oops.Errorf("failed to write record: %w", err)
	}

	if err = writer.Flush(); err != nil {
		return oops.Errorf("failed to flush writer: %w", err)
	}

	return nil
}

// Load returns all records of one session in append order.
func (s *Service) Load(session string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, oops.Errorf("failed to open transcript file: %w", err)
	}
	defer file.Close()

	result := make([]Record, 0)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record Record
		if err = json.Unmarshal([]byte(line), &record); err != nil {
			return nil, oops.Errorf("failed to parse transcript line: %w", err)
		}

		if record.Session == session {
			result = append(result, record)
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, oops.Errorf("error reading transcript file: %w", err)
	}

	return result, nil
}
