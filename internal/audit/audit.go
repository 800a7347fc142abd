package audit

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Auditor keeps a copy of every catalog document submitted for import.
type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// Enabled reports whether payloads are kept.
func (a *Auditor) Enabled() bool {
	return a != nil && a.AuditDir != ""
}

// SavePayload writes raw as an indented JSON file named by a random UUID
// and returns the file name. Payloads that are not valid JSON are stored
// unchanged.
func (a *Auditor) SavePayload(raw []byte) (string, error) {
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	filename := uuid.New().String() + ".json"
	path := filepath.Join(a.AuditDir, filename)

	data := raw
	var indented bytes.Buffer
	if err := indentJSON(&indented, raw); err == nil {
		data = indented.Bytes()
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	log.Printf("Saved import payload: %s", path)
	return filename, nil
}

func indentJSON(dst *bytes.Buffer, raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	dst.Write(out)
	return nil
}

// ensureAuditDir creates the audit directory if it doesn't exist
func (a *Auditor) ensureAuditDir() error {
	if _, err := os.Stat(a.AuditDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
			return fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	return nil
}
