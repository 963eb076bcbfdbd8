package mailmerge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Address is a postal address, used for both the sender and recipients.
// Optional fields are nil when absent or null in the source JSON.
type Address struct {
	Name     *string `json:"name,omitempty"`
	Address1 string  `json:"address_1"`
	Address2 *string `json:"address_2,omitempty"`
	City     string  `json:"city"`
	State    *string `json:"state,omitempty"`
	PostCode string  `json:"post_code"`
	Country  string  `json:"country"`
}

// addressJSON mirrors Address with every field optional so that missing
// required fields can be told apart from empty strings.
type addressJSON struct {
	Name     *string `json:"name"`
	Address1 *string `json:"address_1"`
	Address2 *string `json:"address_2"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	PostCode *string `json:"post_code"`
	Country  *string `json:"country"`
}

// toAddress checks required fields and returns the typed Address.
func (a *addressJSON) toAddress() (Address, error) {
	required := []struct {
		key   string
		value *string
	}{
		{"address_1", a.Address1},
		{"city", a.City},
		{"post_code", a.PostCode},
		{"country", a.Country},
	}
	for _, r := range required {
		if r.value == nil {
			return Address{}, fmt.Errorf("%w %q", ErrMissingField, r.key)
		}
	}

	return Address{
		Name:     a.Name,
		Address1: *a.Address1,
		Address2: a.Address2,
		City:     *a.City,
		State:    a.State,
		PostCode: *a.PostCode,
		Country:  *a.Country,
	}, nil
}

// UnmarshalJSON decodes an address and rejects records missing a required field.
func (a *Address) UnmarshalJSON(data []byte) error {
	var raw addressJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return fmt.Errorf("%w: address is null", ErrDecode)
	}
	addr, err := raw.toAddress()
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// DecodeAddress parses a single JSON object into an Address.
func DecodeAddress(data []byte) (Address, error) {
	var raw addressJSON
	if err := decodeStrictValue(data, &raw); err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	addr, err := raw.toAddress()
	if err != nil {
		return Address{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return addr, nil
}

// DecodeAddresses parses a JSON array into an ordered list of addresses.
// A single malformed record fails the whole list; the error names its index.
func DecodeAddresses(data []byte) ([]Address, error) {
	var raws []*addressJSON
	if err := decodeStrictValue(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if raws == nil {
		return nil, fmt.Errorf("%w: expected a JSON array, got null", ErrDecode)
	}

	addrs := make([]Address, 0, len(raws))
	for i, raw := range raws {
		if raw == nil {
			return nil, fmt.Errorf("%w: addresses[%d]: address is null", ErrDecode, i)
		}
		addr, err := raw.toAddress()
		if err != nil {
			return nil, fmt.Errorf("%w: addresses[%d]: %w", ErrDecode, i, err)
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// decodeStrictValue decodes exactly one JSON value and rejects trailing data.
func decodeStrictValue(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("empty input")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

// optional returns the value of an optional field, or "" when absent.
func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
