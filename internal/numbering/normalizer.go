package numbering

import "github.com/invoza/invoza/internal/models"

// NormalizeCustomers repairs a loaded customer collection so every record
// carries a valid, unique CUS-NNN identifier. Records whose identifier is
// missing, malformed (legacy formats included) or a duplicate of an earlier
// record's are renumbered with the smallest free number. The input is not
// mutated; changed reports whether any identifier differs from the input so
// the caller knows to persist the repaired collection.
//
// Running the pass on an already-normalized collection is a no-op.
func NormalizeCustomers(customers []models.Customer) (repaired []models.Customer, changed bool) {
	repaired = make([]models.Customer, len(customers))
	copy(repaired, customers)

	used := make(map[int]bool)
	var invalid []int
	for i, c := range repaired {
		n, ok := ParseCustomerNumber(c.CustomerNumber)
		if !ok || used[n] {
			invalid = append(invalid, i)
			continue
		}
		used[n] = true
	}

	alloc := &Allocator{used: used}
	for _, i := range invalid {
		repaired[i].CustomerNumber = Format(PrefixCustomer, alloc.Next())
	}
	return repaired, len(invalid) > 0
}

// NormalizeDocuments runs the same repair pass over a document collection,
// independently per type: invoice and quote numbers never interact. Legacy
// identifiers (timestamp-based or otherwise off-pattern) are renumbered into
// the sequential scheme.
func NormalizeDocuments(documents []models.Document) (repaired []models.Document, changed bool) {
	repaired = make([]models.Document, len(documents))
	copy(repaired, documents)

	for _, typ := range []models.DocumentType{models.TypeInvoice, models.TypeQuote} {
		used := make(map[int]bool)
		var invalid []int
		for i, d := range repaired {
			if d.Type != typ {
				continue
			}
			prefix, n, ok := ParseDocumentNumber(d.Number)
			if !ok || prefix != typ.NumberPrefix() || used[n] {
				invalid = append(invalid, i)
				continue
			}
			used[n] = true
		}

		alloc := &Allocator{used: used}
		for _, i := range invalid {
			repaired[i].Number = Format(typ.NumberPrefix(), alloc.Next())
		}
		changed = changed || len(invalid) > 0
	}
	return repaired, changed
}

// UsedCustomerNumbers collects the sequence numbers of all valid customer
// identifiers, the seed for allocating the next one.
func UsedCustomerNumbers(customers []models.Customer) []int {
	var used []int
	for _, c := range customers {
		if n, ok := ParseCustomerNumber(c.CustomerNumber); ok {
			used = append(used, n)
		}
	}
	return used
}

// UsedDocumentNumbers collects the sequence numbers of all valid document
// identifiers of the given type.
func UsedDocumentNumbers(documents []models.Document, typ models.DocumentType) []int {
	var used []int
	for _, d := range documents {
		if d.Type != typ {
			continue
		}
		if prefix, n, ok := ParseDocumentNumber(d.Number); ok && prefix == typ.NumberPrefix() {
			used = append(used, n)
		}
	}
	return used
}

// NextCustomerNumber formats the next free customer identifier.
func NextCustomerNumber(customers []models.Customer) string {
	return Format(PrefixCustomer, NewAllocator(UsedCustomerNumbers(customers)).Next())
}

// NextDocumentNumber formats the next free document identifier for the type.
func NextDocumentNumber(documents []models.Document, typ models.DocumentType) string {
	return Format(typ.NumberPrefix(), NewAllocator(UsedDocumentNumbers(documents, typ)).Next())
}
