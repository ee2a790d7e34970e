package parser

// state is the declaration extractor's position within a top-level
// declaration. Exactly one is active at a time.
type state int

const (
	stateOutside state = iota
	stateAwaitFun
	stateAwaitName
	stateAwaitOpenParen
	stateAwaitParamOrClose
	stateAwaitColon
	stateAwaitParamType
	stateAwaitCommaOrClose
	stateAwaitArrow
	stateAwaitReturnType
	stateAwaitOpenCurly
	stateBody
)

var stateNames = [...]string{
	stateOutside:           "Outside",
	stateAwaitFun:          "AwaitFun",
	stateAwaitName:         "AwaitName",
	stateAwaitOpenParen:    "AwaitOpenParen",
	stateAwaitParamOrClose: "AwaitParamOrClose",
	stateAwaitColon:        "AwaitColon",
	stateAwaitParamType:    "AwaitParamType",
	stateAwaitCommaOrClose: "AwaitCommaOrClose",
	stateAwaitArrow:        "AwaitArrow",
	stateAwaitReturnType:   "AwaitReturnType",
	stateAwaitOpenCurly:    "AwaitOpenCurly",
	stateBody:              "Body",
}

func (s state) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "state(?)"
}

// expectation describes what the state is waiting for, for end of input
// diagnostics.
func (s state) expectation() string {
	switch s {
	case stateAwaitFun:
		return "the keyword 'fun'"
	case stateAwaitName:
		return "a function name"
	case stateAwaitOpenParen:
		return "an open parenthesis"
	case stateAwaitParamOrClose:
		return "an argument name or a close parenthesis"
	case stateAwaitColon:
		return "a colon"
	case stateAwaitParamType:
		return "an argument type"
	case stateAwaitCommaOrClose:
		return "a comma or a close parenthesis"
	case stateAwaitArrow:
		return "an arrow"
	case stateAwaitReturnType:
		return "a return type"
	case stateAwaitOpenCurly:
		return "an open curly brace"
	case stateBody:
		return "a close curly brace"
	}
	return "a declaration"
}
