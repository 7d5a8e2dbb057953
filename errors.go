package jatokenstream

import (
	"errors"
	"fmt"
)

var (
	ErrInputTooLarge  = errors.New("jatokenstream: max size exceeded")
	ErrAnalysisFailed = errors.New("jatokenstream: analysis failed")
	ErrNodeDecode     = errors.New("jatokenstream: can't get leading space and surface from node")
	ErrInvalidPattern = errors.New("jatokenstream: invalid stop pattern")
	ErrClosed         = errors.New("jatokenstream: closed")
)

// 解析器の診断メッセージをそのまま保持する
type AnalysisError struct {
	Message string
}

func (e *AnalysisError) Error() string {
	return ErrAnalysisFailed.Error() + ": " + e.Message
}

func (e *AnalysisError) Is(target error) bool {
	return target == ErrAnalysisFailed
}

type PatternError struct {
	Index   int
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s #%d %q: %v", ErrInvalidPattern.Error(), e.Index, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

func (e *PatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}
