package rules

import "errors"

var (
	ErrRuleFailed = errors.New("rules: rule evaluation failed")
)
