// Package textio читает и пишет числовые текстовые форматы экземпляров и решений.
package textio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrUnexpectedEOF возвращается, если вход закончился раньше ожидаемого.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// Scanner читает из потока числа, разделённые пробельными символами.
type Scanner struct {
	s     *bufio.Scanner
	count int
}

func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	s.Split(bufio.ScanWords)
	return &Scanner{s: s}
}

func (sc *Scanner) next(what string) (string, error) {
	if !sc.s.Scan() {
		if err := sc.s.Err(); err != nil {
			return "", fmt.Errorf("%s: %w", what, err)
		}
		return "", fmt.Errorf("%s (token %d): %w", what, sc.count+1, ErrUnexpectedEOF)
	}
	sc.count++
	return sc.s.Text(), nil
}

// Int читает целое число; what описывает поле для сообщения об ошибке.
func (sc *Scanner) Int(what string) (int, error) {
	tok, err := sc.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%s (token %d): %w", what, sc.count, err)
	}
	return v, nil
}

// Float читает вещественное число.
func (sc *Scanner) Float(what string) (float64, error) {
	tok, err := sc.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%s (token %d): %w", what, sc.count, err)
	}
	return v, nil
}

// Floats читает n вещественных чисел.
func (sc *Scanner) Floats(n int, what string) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		v, err := sc.Float(what)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// JoinInts форматирует срез целых через пробел.
func JoinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

// FormatFloat печатает значение целевой функции без лишних нулей.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
