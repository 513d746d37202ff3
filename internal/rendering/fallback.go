package rendering

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/resume-export/internal/types"
)

// DegradeFunc observes a primary failure before the secondary runs.
type DegradeFunc func(err *RenderError, fallback types.Format)

// Fallback returns an Assembler that runs primary and, on any failure
// (including a panic), answers with secondary's output marked Degraded.
// There are no retries: the first failure degrades.
func Fallback(primary, secondary Assembler, onDegrade DegradeFunc) Assembler {
	return &fallbackAssembler{primary: primary, secondary: secondary, onDegrade: onDegrade}
}

type fallbackAssembler struct {
	primary   Assembler
	secondary Assembler
	onDegrade DegradeFunc
}

func (f *fallbackAssembler) Format() types.Format {
	return f.primary.Format()
}

func (f *fallbackAssembler) Assemble(ctx context.Context, doc *Document) (Output, error) {
	out, err := safeAssemble(ctx, f.primary, doc)
	if err == nil {
		return out, nil
	}

	renderErr := asRenderError(f.primary.Format(), err)
	if f.onDegrade != nil {
		f.onDegrade(renderErr, f.secondary.Format())
	}

	out, err = f.secondary.Assemble(ctx, doc)
	if err != nil {
		return Output{}, err
	}
	out.Degraded = true
	out.Cause = renderErr
	return out, nil
}

func safeAssemble(ctx context.Context, a Assembler, doc *Document) (out Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{
				Format:  a.Format(),
				Message: "assembler panicked",
				Cause:   fmt.Errorf("%v", r),
			}
		}
	}()
	return a.Assemble(ctx, doc)
}

func asRenderError(format types.Format, err error) *RenderError {
	var renderErr *RenderError
	if errors.As(err, &renderErr) {
		return renderErr
	}
	return &RenderError{Format: format, Message: "rendering failed", Cause: err}
}
