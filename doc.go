// Package stockbook keeps track of a personal stock portfolio held in lots of
// exchange-traded instruments, values it against live market prices and
// derives standard risk statistics from historical prices.
//
// The core functionalities include:
//   - Position Ledger: a Portfolio maps each instrument code to a Position
//     holding a quantity of lots and a weighted average cost per unit.
//   - Persistence: the Portfolio is stored as a JSON object
//     {"CODE": {"quantity": 10, "price": 150}}.
//   - Valuation: positions are priced with the latest market quote to compute
//     market value, profit and loss, and percentage change.
//   - Risk Metrics: historical prices of each instrument and of a benchmark
//     index give annualized volatility, beta, alpha and the Sharpe ratio.
//
// Market prices come from a MarketData implementation such as the yahoo or
// eodhd packages. Nothing is cached: every valuation or risk request fetches
// fresh data.
package stockbook
