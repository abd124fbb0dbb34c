package runstore

import (
	"encoding/json"
	"errors"
)

const CurrentSchemaVersion = 1

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(r RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (RunRecord, error) {
	var r RunRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return RunRecord{}, err
	}
	if r.SchemaVersion != CurrentSchemaVersion {
		return RunRecord{}, ErrVersionMismatch
	}
	return r, nil
}
