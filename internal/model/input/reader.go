package input

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"max.ks1230/finance-tracker/internal/entity/finance"
)

const invalidInputMessage = "Invalid input. Please try again.\n"

// ErrInputClosed is returned once the input stream has no more lines.
var ErrInputClosed = errors.New("input closed")

// Reader prompts for values and re-asks until a line satisfies the requested
// type and range. Every attempt consumes exactly one line.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Reader {
	return &Reader{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (r *Reader) Out() io.Writer {
	return r.out
}

// ReadInt reads an integer not lower than min.
func (r *Reader) ReadInt(prompt string, min int) (int, error) {
	return r.readInt(r.printer(prompt), min, math.MaxInt)
}

// ReadIntRange reads an integer in [min, max].
func (r *Reader) ReadIntRange(prompt string, min, max int) (int, error) {
	return r.readInt(r.printer(prompt), min, max)
}

// ReadChoice lists the choices one per line before every attempt and reads
// an integer in [min, max].
func (r *Reader) ReadChoice(choices []string, min, max int) (int, error) {
	return r.readInt(func() {
		for _, choice := range choices {
			fmt.Fprintln(r.out, choice)
		}
	}, min, max)
}

func (r *Reader) ReadDouble(prompt string, min float64) (float64, error) {
	var res float64
	err := r.retry(r.printer(prompt), func(line string) bool {
		tok, ok := firstToken(line)
		if !ok {
			return false
		}
		val, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
			return false
		}
		if val < min {
			return false
		}
		res = val
		return true
	})
	return res, err
}

func (r *Reader) ReadDate(prompt string) (finance.Date, error) {
	var res finance.Date
	err := r.retry(r.printer(prompt), func(line string) bool {
		d, err := finance.ParseDate(strings.TrimSpace(line))
		if err != nil {
			return false
		}
		res = d
		return true
	})
	return res, err
}

// ReadLine returns the next line as typed, without validation.
func (r *Reader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	return r.readLine()
}

// ReadText is ReadLine that re-asks on blank lines. The result is trimmed.
func (r *Reader) ReadText(prompt string) (string, error) {
	var res string
	err := r.retry(r.printer(prompt), func(line string) bool {
		res = strings.TrimSpace(line)
		return res != ""
	})
	return res, err
}

func (r *Reader) readInt(show func(), min, max int) (int, error) {
	var res int
	err := r.retry(show, func(line string) bool {
		tok, ok := firstToken(line)
		if !ok {
			return false
		}
		val, err := strconv.Atoi(tok)
		if err != nil || val < min || val > max {
			return false
		}
		res = val
		return true
	})
	return res, err
}

func (r *Reader) retry(show func(), accept func(line string) bool) error {
	pending := ""
	for {
		fmt.Fprint(r.out, pending)
		pending = ""

		show()
		line, err := r.readLine()
		if err != nil {
			return err
		}
		if accept(line) {
			return nil
		}
		pending = invalidInputMessage
	}
}

// readLine returns the next line without its terminator, however long it is.
// A final line without a newline is still returned.
func (r *Reader) readLine() (string, error) {
	line, err := r.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "read line")
	}
	if err != nil && line == "" {
		return "", ErrInputClosed
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (r *Reader) printer(prompt string) func() {
	return func() {
		fmt.Fprint(r.out, prompt)
	}
}

func firstToken(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}
