package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	money "github.com/rpgo/tax-estimator/pkg/decimal"
)

// prompter asks for values one line at a time.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask prints question and returns the trimmed answer. An empty answer takes
// def; with no default a value is required.
func (p *prompter) ask(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", eris.Wrapf(err, "read %q", question)
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		if def == "" {
			return "", eris.Errorf("no answer given for %q", question)
		}
		return def, nil
	}
	return answer, nil
}

func (p *prompter) askAmount(question string) (decimal.Decimal, error) {
	answer, err := p.ask(question, "")
	if err != nil {
		return decimal.Zero, err
	}
	return parseAmount(question, answer)
}

func parseAmount(name, value string) (decimal.Decimal, error) {
	m, err := money.ParseMoney(value)
	if err != nil {
		return decimal.Zero, eris.Wrapf(err, "%s: %q is not an amount", name, value)
	}
	if m.IsNegative() {
		return decimal.Zero, eris.Errorf("%s cannot be negative", name)
	}
	return m.Decimal, nil
}
