package contact

import (
	"fmt"
	"strings"
)

// Record is one named contact and its ordered phone numbers.
// Phone values are unique within a record. Not safe for concurrent use.
type Record struct {
	name   string
	phones []PhoneNumber
}

// NewRecord creates a record with no phones.
func NewRecord(name string) *Record {
	return &Record{name: name}
}

// Name returns the contact name fixed at creation.
func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the phone numbers in insertion order.
func (r *Record) Phones() []PhoneNumber {
	return append([]PhoneNumber(nil), r.phones...)
}

// Len returns the number of phones on the record.
func (r *Record) Len() int {
	return len(r.phones)
}

// AddPhone validates number and appends it.
// Returns ErrInvalidPhoneFormat or ErrDuplicatePhone without modifying the record.
func (r *Record) AddPhone(number string) error {
	p, err := NewPhoneNumber(number)
	if err != nil {
		return err
	}
	if r.indexOf(number) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicatePhone, number)
	}
	r.phones = append(r.phones, p)
	return nil
}

// EditPhone replaces the first phone equal to oldNumber with newNumber, keeping its position.
// newNumber is validated before anything else; an invalid value returns ErrInvalidPhoneFormat
// and leaves the record unchanged. If oldNumber is not on the record nothing happens and
// nil is returned. Moving onto a value held at another position returns ErrDuplicatePhone.
func (r *Record) EditPhone(oldNumber, newNumber string) error {
	p, err := NewPhoneNumber(newNumber)
	if err != nil {
		return err
	}
	i := r.indexOf(oldNumber)
	if i < 0 {
		return nil
	}
	if j := r.indexOf(newNumber); j >= 0 && j != i {
		return fmt.Errorf("%w: %q", ErrDuplicatePhone, newNumber)
	}
	r.phones[i] = p
	return nil
}

// FindPhone reports whether number is on the record. On a match it returns the
// queried value itself; it is a presence test, not a lookup of stored data.
func (r *Record) FindPhone(number string) (string, bool) {
	if r.indexOf(number) < 0 {
		return "", false
	}
	return number, true
}

// RemovePhone deletes the first phone equal to number.
// Returns ErrPhoneNotFound if the record does not hold it.
func (r *Record) RemovePhone(number string) error {
	if _, ok := r.FindPhone(number); !ok {
		return fmt.Errorf("%w: %q", ErrPhoneNotFound, number)
	}
	i := r.indexOf(number)
	r.phones = append(r.phones[:i], r.phones[i+1:]...)
	return nil
}

// String renders "Contact name: NAME, phones: P1; P2".
func (r *Record) String() string {
	vals := make([]string, len(r.phones))
	for i, p := range r.phones {
		vals[i] = p.String()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(vals, "; "))
}

func (r *Record) indexOf(number string) int {
	for i, p := range r.phones {
		if p.value == number {
			return i
		}
	}
	return -1
}
