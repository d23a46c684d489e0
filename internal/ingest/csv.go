// Package ingest normalizes attendance spreadsheets into clean records for
// the metrics engine. Rows that cannot be trusted are reported as
// *MalformedRecordError and never reach the engine.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pracazumbi/presenca-api/internal/domain"
)

const DefaultSeparator = ';'

const (
	colParticipantID = "participant_id"
	colName          = "name"
	colAge           = "age"
	colSex           = "sex"
	colDate          = "date"
	colPresent       = "present"
	colExerciseType  = "exercise_type"
	colTime          = "time"
)

// headerAliases maps lower-cased, trimmed header names to canonical columns.
var headerAliases = map[string]string{
	"participant_id": colParticipantID,
	"id_aluna":       colParticipantID,
	"name":           colName,
	"nome":           colName,
	"age":            colAge,
	"idade":          colAge,
	"sex":            colSex,
	"sexo":           colSex,
	"date":           colDate,
	"data":           colDate,
	"present":        colPresent,
	"presente":       colPresent,
	"exercise_type":  colExerciseType,
	"tipo_exercicio": colExerciseType,
	"horario":        colTime,
	"horário":        colTime,
	"hor rio":        colTime,
}

var requiredColumns = []string{colParticipantID, colDate, colPresent}

type Options struct {
	// Separator defaults to ';'.
	Separator rune
	// Encoding of the source: "utf-8" (default), "cp850" or "latin1".
	Encoding string
	// NameFixes replaces DefaultNameFixes when non-nil.
	NameFixes map[string]string
	// Dedupe keeps only the last row for each participant and date.
	Dedupe bool
	// SkipMalformed collects bad rows in Dataset.Rejected instead of
	// failing on the first one.
	SkipMalformed bool
}

type Dataset struct {
	Records      []domain.AttendanceRecord
	Participants []domain.Participant
	Rejected     []*MalformedRecordError
}

func ParseFile(path string, opts Options) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("os.Open -> %w", err)
	}
	defer f.Close()

	return Parse(f, opts)
}

func Parse(r io.Reader, opts Options) (Dataset, error) {
	dec, err := decoderFor(opts.Encoding)
	if err != nil {
		return Dataset{}, err
	}

	reader := csv.NewReader(transform.NewReader(r, dec))
	reader.Comma = opts.Separator
	if reader.Comma == 0 {
		reader.Comma = DefaultSeparator
	}
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, &MalformedRecordError{Line: 1, Err: fmt.Errorf("%w: empty file", ErrMissingColumn)}
		}
		return Dataset{}, &MalformedRecordError{Line: 1, Err: err}
	}

	columns, err := mapHeader(header)
	if err != nil {
		return Dataset{}, err
	}

	n := &normalizer{
		columns: columns,
		fixer:   newNameFixer(opts.NameFixes),
		opts:    opts,
		seen:    make(map[string]struct{}),
		byKey:   make(map[recordKey]int),
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			if rerr := n.reject(&MalformedRecordError{Line: parseErr.Line, Err: parseErr.Err}); rerr != nil {
				return Dataset{}, rerr
			}
			continue
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("reader.Read -> %w", err)
		}

		if isBlank(row) {
			continue
		}

		line, _ := reader.FieldPos(0)
		if err := n.add(line, row); err != nil {
			return Dataset{}, err
		}
	}

	return n.dataset(), nil
}

type recordKey struct {
	participantID string
	date          string
}

type normalizer struct {
	columns map[string]int
	fixer   nameFixer
	opts    Options

	records      []domain.AttendanceRecord
	participants []domain.Participant
	rejected     []*MalformedRecordError
	seen         map[string]struct{}
	byKey        map[recordKey]int
}

func (n *normalizer) add(line int, row []string) error {
	record, participant, merr := n.parseRow(line, row)
	if merr != nil {
		return n.reject(merr)
	}

	if _, ok := n.seen[participant.ID]; !ok {
		n.seen[participant.ID] = struct{}{}
		n.participants = append(n.participants, participant)
	}

	if n.opts.Dedupe {
		key := recordKey{participantID: record.ParticipantID, date: record.Date.Format("2006-01-02")}
		if i, ok := n.byKey[key]; ok {
			n.records[i] = record
			return nil
		}
		n.byKey[key] = len(n.records)
	}
	n.records = append(n.records, record)

	return nil
}

func (n *normalizer) parseRow(line int, row []string) (domain.AttendanceRecord, domain.Participant, *MalformedRecordError) {
	id := n.value(row, colParticipantID)
	if id == "" {
		return domain.AttendanceRecord{}, domain.Participant{}, &MalformedRecordError{Line: line, Field: colParticipantID, Err: ErrEmptyValue}
	}

	rawDate := n.value(row, colDate)
	date, err := parseDate(rawDate)
	if err != nil {
		return domain.AttendanceRecord{}, domain.Participant{}, &MalformedRecordError{Line: line, Field: colDate, Value: rawDate, Err: err}
	}

	rawPresent := n.value(row, colPresent)
	present, err := parsePresent(rawPresent)
	if err != nil {
		return domain.AttendanceRecord{}, domain.Participant{}, &MalformedRecordError{Line: line, Field: colPresent, Value: rawPresent, Err: err}
	}

	rawAge := n.value(row, colAge)
	age, err := parseAge(rawAge)
	if err != nil {
		return domain.AttendanceRecord{}, domain.Participant{}, &MalformedRecordError{Line: line, Field: colAge, Value: rawAge, Err: err}
	}

	record := domain.AttendanceRecord{
		ParticipantID: id,
		Date:          date,
		Present:       present,
		ExerciseType:  n.value(row, colExerciseType),
	}
	participant := domain.Participant{
		ID:   id,
		Name: n.fixer.fix(n.value(row, colName)),
		Age:  age,
		Sex:  n.value(row, colSex),
	}

	return record, participant, nil
}

func (n *normalizer) reject(merr *MalformedRecordError) error {
	if !n.opts.SkipMalformed {
		return merr
	}
	n.rejected = append(n.rejected, merr)
	return nil
}

func (n *normalizer) value(row []string, column string) string {
	i, ok := n.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (n *normalizer) dataset() Dataset {
	return Dataset{
		Records:      n.records,
		Participants: n.participants,
		Rejected:     n.rejected,
	}
}

func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		canonical, ok := headerAliases[name]
		if !ok {
			continue
		}
		if _, dup := columns[canonical]; !dup {
			columns[canonical] = i
		}
	}

	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, &MalformedRecordError{Line: 1, Field: required, Err: ErrMissingColumn}
		}
	}

	return columns, nil
}

func utf8Decoder() transform.Transformer {
	return unicode.BOMOverride(unicode.UTF8.NewDecoder())
}

func cp850Decoder() transform.Transformer {
	return charmap.CodePage850.NewDecoder()
}

func latin1Decoder() transform.Transformer {
	return charmap.ISO8859_1.NewDecoder()
}

var decoders = map[string]func() transform.Transformer{
	"utf-8":      utf8Decoder,
	"utf8":       utf8Decoder,
	"cp850":      cp850Decoder,
	"ibm850":     cp850Decoder,
	"latin1":     latin1Decoder,
	"iso-8859-1": latin1Decoder,
}

// Encodings returns the accepted Options.Encoding names, sorted. Matching
// ignores case and surrounding spaces; the empty name means utf-8.
func Encodings() []string {
	names := make([]string, 0, len(decoders))
	for name := range decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KnownEncoding reports whether Parse accepts name as Options.Encoding.
func KnownEncoding(name string) bool {
	_, err := decoderFor(name)
	return err == nil
}

func decoderFor(name string) (transform.Transformer, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return utf8Decoder(), nil
	}

	newDecoder, ok := decoders[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return newDecoder(), nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
