package statecanon

import (
	"context"
	"errors"
	"io"

	eng "github.com/reoring/statecanon/internal/engine"
)

// ParseFrom is the primary entry point. It consumes tokens from the Source,
// builds an ordered raw tree, and delegates to the Schema.
func ParseFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, singleIssue(CodeParseError, "nil schema")
	}
	v, err := Decode(src, lastOpt(opts))
	if err != nil {
		return zero, err
	}
	return s.Parse(ctx, v)
}

// ParseFromWithMeta is ParseFrom with presence metadata. Presence collection
// is on unless the options explicitly configure it.
func ParseFromWithMeta[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (Decoded[T], error) {
	var zero Decoded[T]
	if s == nil {
		return zero, singleIssue(CodeParseError, "nil schema")
	}
	opt := lastOpt(opts)
	if !opt.Presence.Collect && len(opt.Presence.Include) == 0 && len(opt.Presence.Exclude) == 0 {
		opt.Presence.Collect = true
	}
	v, err := Decode(src, opt)
	if err != nil {
		return zero, err
	}
	dm, err := s.ParseWithMeta(ctx, v)
	dm.Presence = applyPresenceOptions(dm.Presence, opt.Presence)
	return dm, err
}

// StreamParse reads a JSON document from r. When MaxBytes is set the size cap
// is enforced up front.
func StreamParse[T any](ctx context.Context, s Schema[T], r io.Reader, opts ...ParseOpt) (T, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			var zero T
			return zero, singleIssue(CodeParseError, err.Error())
		}
		if int64(len(data)) > opt.MaxBytes {
			var zero T
			return zero, singleIssue(CodeTruncated, "max bytes exceeded")
		}
		return ParseFrom(ctx, s, JSONBytes(data), opt)
	}
	return ParseFrom(ctx, s, JSONReader(r), opt)
}

// Decode builds the raw tree of one document: objects become ordered
// record.Map[any] values and numbers stay json.Number. Duplicate keys, depth
// and size limits are enforced per opt. Trailing input is a parse error.
func Decode(src Source, opt ParseOpt) (any, error) {
	var sink func(eng.SimpleIssue)
	if opt.Warnings != nil {
		sink = func(si eng.SimpleIssue) {
			opt.Warnings(Issue{Path: si.Path, Code: si.Code, Message: si.Message, Offset: src.Location()})
		}
	}
	enforced := eng.WrapWithEnforcement(src, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   sink,
	})
	v, err := eng.DecodeAnyFromSource(enforced)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, singleIssue(CodeParseError, "empty input")
		}
		return nil, toIssues(err)
	}
	if _, err := enforced.NextToken(); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, singleIssue(CodeParseError, "trailing data after document")
		}
		return nil, toIssues(err)
	}
	return v, nil
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return ParseOpt{}
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		it := NewIssue(ie.Path, ie.Code, nil)
		it.Message = ie.Message
		return AppendIssues(nil, it)
	}
	it := NewIssue("/", CodeParseError, nil)
	it.Message = err.Error()
	it.Cause = err
	return AppendIssues(nil, it)
}

func singleIssue(code, msg string) Issues {
	it := NewIssue("/", code, nil)
	it.Message = msg
	return AppendIssues(nil, it)
}
