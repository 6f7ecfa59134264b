package exchange

import "github.com/stretchr/testify/mock"

// MatchExchange creates a custom matcher for exchange arguments in mocks
func MatchExchange(matcher func(Exchange) bool) interface{} {
	return mock.MatchedBy(matcher)
}
