package codec

import (
	"fmt"
	"io"

	"quadsolve/internal/domain"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackCodec writes compact binary output for machine consumers
type MsgpackCodec struct{}

// NewMsgpackCodec creates a new msgpack codec
func NewMsgpackCodec() *MsgpackCodec {
	return &MsgpackCodec{}
}

// Format returns the codec format identifier
func (c *MsgpackCodec) Format() string {
	return "msgpack"
}

// ExportSolve writes a solve record as msgpack
func (c *MsgpackCodec) ExportSolve(rec *domain.SolveRecord, w io.Writer) error {
	return c.encode(NewSolveDocument(rec), w)
}

// ExportTestRun writes a test run as msgpack
func (c *MsgpackCodec) ExportTestRun(run *domain.TestRun, w io.Writer) error {
	return c.encode(NewTestRunDocument(run), w)
}

func (c *MsgpackCodec) encode(v any, w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode msgpack: %w", err)
	}
	return nil
}
