package mappable

import (
	"context"
	"fmt"
	"io"
)

// ParseJSON decodes data with the current JSON driver and hydrates a *T.
// Decoding failures are reported as a parse_error issue. Duplicate object keys
// are handled according to ParseOpt.OnDuplicateKey; warnings are appended to
// the object's issues after hydration.
func (s *Schema[T]) ParseJSON(ctx context.Context, data []byte, opts ...ParseOpt) (*T, error) {
	opt := lastOpt(opts)
	raw, err := getJSONDriver().Unmarshal(data)
	if err != nil {
		return nil, singleIssue("/", CodeParseError, err)
	}
	var dups Issues
	if opt.OnDuplicateKey != DuplicatesIgnore {
		if dups, err = DetectDuplicateKeys(data); err != nil {
			return nil, singleIssue("/", CodeParseError, err)
		}
		if len(dups) > 0 && opt.OnDuplicateKey == DuplicatesError {
			return nil, dups
		}
	}
	t, err := s.Parse(ctx, raw, opt)
	if t == nil || len(dups) == 0 {
		return t, err
	}
	o := any(t).(Mappable).base()
	o.issues = append(o.issues, dups...)
	if opt.Strict {
		return t, o.issues
	}
	return t, nil
}

// ParseReader reads the whole document from r and hydrates a *T.
// ParseOpt.MaxBytes bounds the input; larger documents are rejected with a
// truncated issue.
func (s *Schema[T]) ParseReader(ctx context.Context, r io.Reader, opts ...ParseOpt) (*T, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		r = io.LimitReader(r, opt.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, singleIssue("/", CodeParseError, err)
	}
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, singleIssue("/", CodeTruncated, fmt.Errorf("input exceeds %d bytes", opt.MaxBytes))
	}
	return s.ParseJSON(ctx, data, opt)
}
