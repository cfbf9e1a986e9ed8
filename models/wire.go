package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// WireBool accepts the backend's boolean spellings: true/false, 0/1, "0"/"1".
type WireBool bool

func (b *WireBool) UnmarshalJSON(data []byte) error {
	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		*b = WireBool(asBool)
		return nil
	}

	var asNumber float64
	if err := json.Unmarshal(data, &asNumber); err == nil {
		*b = asNumber != 0
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*b = WireBool(asString != "" && asString != "0" && !strings.EqualFold(asString, "false"))
		return nil
	}

	return fmt.Errorf("cannot decode %s as boolean", string(data))
}

func (b WireBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// WireLanguages accepts either a JSON array of strings or the comma-joined
// string form the update endpoint uses.
type WireLanguages []string

func (l *WireLanguages) UnmarshalJSON(data []byte) error {
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*l = asList
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*l = ParseLanguages(asString)
		return nil
	}

	return fmt.Errorf("cannot decode %s as language list", string(data))
}
