// Package numbering assigns and repairs the sequential human-readable
// identifiers carried by customers (CUS-NNN) and documents (INV-NNN /
// QUO-NNN). Allocation fills gaps: the smallest unused positive number wins,
// so deleting CUS-002 means the next customer becomes CUS-002 again.
package numbering

import (
	"fmt"
	"regexp"
	"strconv"
)

// Identifier prefixes. Invoice and quote numbers form separate spaces.
const (
	PrefixCustomer = "CUS"
	PrefixInvoice  = "INV"
	PrefixQuote    = "QUO"
)

// Identifiers are PREFIX-NNN with at least three digits. Numbers past 999
// widen to four or more digits and remain valid.
var (
	customerPattern = regexp.MustCompile(`^CUS-(\d{3,})$`)
	documentPattern = regexp.MustCompile(`^(INV|QUO)-(\d{3,})$`)
)

// Allocator hands out the smallest unused positive sequence number.
type Allocator struct {
	used map[int]bool
}

// NewAllocator seeds an allocator with the numbers already in use.
func NewAllocator(used []int) *Allocator {
	a := &Allocator{used: make(map[int]bool, len(used))}
	for _, n := range used {
		if n > 0 {
			a.used[n] = true
		}
	}
	return a
}

// Next returns the smallest positive integer not yet used and marks it used.
func (a *Allocator) Next() int {
	candidate := 1
	for a.used[candidate] {
		candidate++
	}
	a.used[candidate] = true
	return candidate
}

// Format renders a sequence number as PREFIX-NNN, zero-padded to three
// digits. Larger numbers keep all their digits.
func Format(prefix string, n int) string {
	return fmt.Sprintf("%s-%03d", prefix, n)
}

// ParseCustomerNumber extracts the sequence number from a CUS-NNN
// identifier. ok is false for anything that does not match the pattern.
func ParseCustomerNumber(id string) (n int, ok bool) {
	m := customerPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	return mustAtoi(m[1]), true
}

// ParseDocumentNumber extracts the prefix and sequence number from an
// INV-NNN or QUO-NNN identifier.
func ParseDocumentNumber(id string) (prefix string, n int, ok bool) {
	m := documentPattern.FindStringSubmatch(id)
	if m == nil {
		return "", 0, false
	}
	return m[1], mustAtoi(m[2]), true
}

func mustAtoi(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		// unreachable: the pattern only matches digits
		return 0
	}
	return n
}
