// Package schemas embeds the JSON Schemas of the documents the CLI writes.
package schemas

import _ "embed"

// File names of the embedded schemas, relative to this directory.
const (
	TradeBalanceFile    = "trade_balance.schema.json"
	RawTradeBalanceFile = "raw_trade_balance.schema.json"
)

// TradeBalance is the schema of a table whose records carry year and month.
//
//go:embed trade_balance.schema.json
var TradeBalance string

// RawTradeBalance is the schema of a table written without period fields.
//
//go:embed raw_trade_balance.schema.json
var RawTradeBalance string
