package challenge

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
)

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidISODate reports whether v is a string shaped like YYYY-MM-DD.
// The calendar is not checked: "2024-13-99" passes.
func IsValidISODate(v any) bool {
	s, ok := v.(string)
	return ok && isoDateRe.MatchString(s)
}

// IsValidDepositItem reports whether v is a valid stored deposit.
func IsValidDepositItem(v any) bool {
	_, err := ValidateDeposit(v)
	return err == nil
}

// IsValidState reports whether v is a valid stored state.
func IsValidState(v any) bool {
	_, err := ValidateState(v)
	return err == nil
}

// ValidateDeposit checks one decoded deposit entry and converts it. Fields of
// a pending entry other than id and done are ignored.
func ValidateDeposit(v any) (Deposit, error) {
	return validateDeposit(v, "")
}

func validateDeposit(v any, path string) (Deposit, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Deposit{}, invalid(path, "must be an object")
	}

	rawID, ok := obj["id"].(float64)
	if !ok {
		return Deposit{}, invalid(join(path, "id"), "must be a number")
	}
	if rawID < 1 || rawID > SlotCount {
		return Deposit{}, invalid(join(path, "id"), fmt.Sprintf("must be between 1 and %d", SlotCount))
	}
	if rawID != math.Trunc(rawID) {
		return Deposit{}, invalid(join(path, "id"), "must be an integer")
	}

	done, ok := obj["done"].(bool)
	if !ok {
		return Deposit{}, invalid(join(path, "done"), "must be a boolean")
	}

	d := Deposit{ID: int(rawID)}
	if !done {
		return d, nil
	}

	amount, ok := obj["amount"].(float64)
	if !ok || !(amount > 0) {
		return Deposit{}, invalid(join(path, "amount"), "must be a number > 0")
	}
	if !IsValidISODate(obj["date"]) {
		return Deposit{}, invalid(join(path, "date"), "must be a YYYY-MM-DD string")
	}
	var note string
	if raw, present := obj["note"]; present && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return Deposit{}, invalid(join(path, "note"), "must be a string or null")
		}
		note = s
	}

	d.Completion = &Completion{Amount: amount, Date: obj["date"].(string), Note: note}
	return d, nil
}

// ValidateState checks a decoded value against the persisted schema and
// converts it. Besides the per-entry checks it rejects duplicate ids, so a
// valid state always holds ids 1..200 exactly once; entries are placed by id.
func ValidateState(v any) (State, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return State{}, invalid("", "must be an object")
	}

	var st State
	rawStart, present := obj["startDate"]
	switch {
	case !present:
		return State{}, invalid("startDate", "is required")
	case rawStart == nil:
	case IsValidISODate(rawStart):
		st.StartDate = rawStart.(string)
	default:
		return State{}, invalid("startDate", "must be null or a YYYY-MM-DD string")
	}

	items, ok := obj["deposits"].([]any)
	if !ok {
		return State{}, invalid("deposits", "must be an array")
	}
	if len(items) != SlotCount {
		return State{}, invalid("deposits", fmt.Sprintf("must have exactly %d entries, got %d", SlotCount, len(items)))
	}

	st.Deposits = make([]Deposit, SlotCount)
	for i, item := range items {
		path := fmt.Sprintf("deposits[%d]", i)
		d, err := validateDeposit(item, path)
		if err != nil {
			return State{}, err
		}
		if st.Deposits[d.ID-1].ID != 0 {
			return State{}, invalid(join(path, "id"), fmt.Sprintf("duplicate id %d", d.ID))
		}
		st.Deposits[d.ID-1] = d
	}
	return st, nil
}

// Decode parses untrusted text and validates it. It never panics; the error
// is either a JSON syntax error or a *ValidationError.
func Decode(data []byte) (State, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return State{}, err
	}
	return ValidateState(v)
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}
