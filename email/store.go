package email

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DateFormat is the date layout used across the corpus and filters.
const DateFormat = "2006/01/02"

// MaxResults caps how many emails a search returns.
const MaxResults = 10

// Email is one message in the corpus.
type Email struct {
	Subject      string `json:"subject"`
	Body         string `json:"body"`
	Sender       string `json:"sender"`
	ReceivedDate string `json:"received_date"`
}

// Document renders the email the way it is indexed and shown to the model.
func (e Email) Document() string {
	return "Subject: " + e.Subject + "\nBody: " + e.Body
}

// Store is an in-memory email corpus loaded from a JSONL file.
// Safe for concurrent use; Watch may reload it in the background.
type Store struct {
	path   string
	logger *slog.Logger

	mu     sync.RWMutex
	emails []Email
}

// LoadStore reads a JSONL corpus from path.
// Malformed lines are skipped with a warning; an unreadable file is an
// error.
func LoadStore(path string) (*Store, error) {
	s := &Store{path: path, logger: slog.Default()}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStore creates a store from emails already in memory, for tests and
// embedded datasets.
func NewStore(emails []Email) *Store {
	return &Store{emails: emails, logger: slog.Default()}
}

// SetLogger sets the structured logger used for load warnings.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Len returns the number of emails in the corpus.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.emails)
}

// Emails returns a copy of the corpus.
func (s *Store) Emails() []Email {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Email, len(s.emails))
	copy(out, s.emails)
	return out
}

// reload reads the corpus file from disk and swaps it in.
func (s *Store) reload() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()

	var emails []Email
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Email
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			s.logger.Warn("skipping malformed corpus line", "path", s.path, "line", lineNo, "err", err)
			continue
		}
		emails = append(emails, e)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading corpus: %w", err)
	}

	s.mu.Lock()
	s.emails = emails
	s.mu.Unlock()
	return nil
}

// Search returns the emails most relevant to query, ranked by BM25, capped
// at MaxResults. The before and after filters bound the received date with
// exclusive comparisons; either may be an absolute YYYY/MM/DD date, a
// relative offset like "7d", or empty.
func (s *Store) Search(query, after, before string) ([]Email, error) {
	afterT, err := parseFilter(after, time.Now())
	if err != nil {
		return nil, fmt.Errorf("after filter: %w", err)
	}
	beforeT, err := parseFilter(before, time.Now())
	if err != nil {
		return nil, fmt.Errorf("before filter: %w", err)
	}

	s.mu.RLock()
	emails := s.emails
	s.mu.RUnlock()

	var filtered []Email
	for _, e := range emails {
		received, err := ParseDate(e.ReceivedDate)
		if err != nil {
			s.logger.Warn("skipping email with invalid date", "subject", e.Subject, "date", e.ReceivedDate)
			continue
		}
		if !afterT.IsZero() && !received.After(afterT) {
			continue
		}
		if !beforeT.IsZero() && !received.Before(beforeT) {
			continue
		}
		filtered = append(filtered, e)
	}

	if len(filtered) == 0 || strings.TrimSpace(query) == "" {
		if len(filtered) > MaxResults {
			filtered = filtered[:MaxResults]
		}
		return filtered, nil
	}

	return rankBM25(query, filtered, MaxResults), nil
}

// ParseDate parses a YYYY/MM/DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY/MM/DD)", s)
	}
	return t, nil
}

// ParseRelative parses offsets like "3d", "2m", "1y" into a duration.
// Months are 30 days and years 365; good enough for workshop filters.
func ParseRelative(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid relative time %q", s)
	}
	amount, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return 0, fmt.Errorf("invalid relative time %q", s)
	}

	day := 24 * time.Hour
	switch unit := s[len(s)-1]; unit {
	case 'd', 'D':
		return time.Duration(amount) * day, nil
	case 'm', 'M':
		return time.Duration(amount) * 30 * day, nil
	case 'y', 'Y':
		return time.Duration(amount) * 365 * day, nil
	default:
		return 0, fmt.Errorf("unknown relative time suffix %q", string(unit))
	}
}

// parseFilter resolves a filter value to a point in time.
// Empty means unbounded (zero time). Absolute dates win; otherwise the
// value is tried as a relative offset back from now.
func parseFilter(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := ParseDate(s); err == nil {
		return t, nil
	}
	d, err := ParseRelative(s)
	if err != nil {
		return time.Time{}, errors.New("expected YYYY/MM/DD or a relative offset like 7d")
	}
	return now.Add(-d), nil
}
