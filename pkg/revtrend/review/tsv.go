package review

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
)

// Column counts of the flat exchange files.
const (
	RawColumns        = 7 // business_id, alias, name, business_rating, review_id, review_rating, text
	LabelledColumns   = 8 // raw columns followed by the sentiment label
	ClassifiedColumns = 2 // text, sentiment label
)

const maxLineBytes = 4 << 20

// Runs of two or more whitespace characters are column separators in
// scraped files, where tabs were sometimes flattened into spaces.
var wideSpace = regexp.MustCompile(`\s{2,}`)

// MalformedLineError reports a line whose column count does not match.
type MalformedLineError struct {
	Line    int
	Columns int
	Want    string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: got %d columns, want %s", e.Line, e.Columns, e.Want)
}

func (e *MalformedLineError) Unwrap() error { return internalerr.ErrMalformedRecord }

// ReadStats summarises one pass over an input file.
type ReadStats struct {
	Lines   int // non-blank lines seen
	Records int // lines turned into reviews
	Skipped int // malformed lines
}

// ParseRaw reads the 7-column pre-sentiment format. Malformed lines are
// logged and skipped; a file without any valid line is an error.
func ParseRaw(r io.Reader, logger *log.Logger) ([]Review, ReadStats, error) {
	return parse(r, logger, func(line int, cols []string) (Review, error) {
		if len(cols) != RawColumns {
			return Review{}, &MalformedLineError{Line: line, Columns: len(cols), Want: "7"}
		}
		return rawReview(cols), nil
	}, true)
}

// ParseClassified reads a labelled file: either the 2-column
// (text, label) format or the 8-column output of the classify stage.
func ParseClassified(r io.Reader, logger *log.Logger) ([]Review, ReadStats, error) {
	return parse(r, logger, func(line int, cols []string) (Review, error) {
		switch len(cols) {
		case ClassifiedColumns:
			return Review{Text: cols[0], Sentiment: ParseSentiment(cols[1])}, nil
		case LabelledColumns:
			rev := rawReview(cols[:RawColumns])
			rev.Sentiment = ParseSentiment(cols[RawColumns])
			return rev, nil
		default:
			return Review{}, &MalformedLineError{Line: line, Columns: len(cols), Want: "2 or 8"}
		}
	}, false)
}

// ReadRawFile opens path and parses it with ParseRaw.
func ReadRawFile(path string, logger *log.Logger) ([]Review, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	reviews, stats, err := ParseRaw(f, logger)
	if err != nil {
		return nil, stats, fmt.Errorf("read %s: %w", path, err)
	}
	return reviews, stats, nil
}

// ReadClassifiedFile opens path and parses it with ParseClassified.
func ReadClassifiedFile(path string, logger *log.Logger) ([]Review, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	reviews, stats, err := ParseClassified(f, logger)
	if err != nil {
		return nil, stats, fmt.Errorf("read %s: %w", path, err)
	}
	return reviews, stats, nil
}

func parse(r io.Reader, logger *log.Logger, build func(line int, cols []string) (Review, error), collapse bool) ([]Review, ReadStats, error) {
	if logger == nil {
		logger = log.Default()
	}

	var (
		reviews []Review
		stats   ReadStats
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.Lines++

		if collapse {
			line = wideSpace.ReplaceAllString(line, "\t")
		}
		cols := strings.Split(line, "\t")
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}

		rev, err := build(lineNo, cols)
		if err == nil {
			err = rev.Validate()
		}
		if err != nil {
			stats.Skipped++
			logger.Warn("skipping malformed line", "line", lineNo, "cols", len(cols), "err", err)
			continue
		}
		reviews = append(reviews, rev)
		stats.Records++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, err
	}

	if len(reviews) == 0 {
		return nil, stats, internalerr.ErrNoInput
	}
	return reviews, stats, nil
}

func rawReview(cols []string) Review {
	return Review{
		BusinessID:     cols[0],
		Alias:          cols[1],
		BusinessName:   cols[2],
		BusinessRating: cols[3],
		ReviewID:       cols[4],
		ReviewRating:   cols[5],
		Text:           cols[6],
	}
}

// WriteLabelled writes the 8-column format: the raw columns followed by the
// sentiment label.
func WriteLabelled(w io.Writer, reviews []Review) error {
	bw := bufio.NewWriter(w)
	for _, r := range reviews {
		cols := []string{
			r.BusinessID, r.Alias, r.BusinessName, r.BusinessRating,
			r.ReviewID, r.ReviewRating, r.Text, string(r.Sentiment),
		}
		if _, err := bw.WriteString(joinColumns(cols)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePairs writes the 2-column (text, label) format consumed by the trend
// stage.
func WritePairs(w io.Writer, reviews []Review) error {
	bw := bufio.NewWriter(w)
	for _, r := range reviews {
		if _, err := bw.WriteString(joinColumns([]string{r.Text, string(r.Sentiment)})); err != nil {
			return err
		}
	}
	return bw.Flush()
}

var columnBreaks = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

func joinColumns(cols []string) string {
	for i, c := range cols {
		cols[i] = columnBreaks.Replace(c)
	}
	return strings.Join(cols, "\t") + "\n"
}
