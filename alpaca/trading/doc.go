// Package trading defines endpoints of the Alpaca trading API.
//
// Endpoints without inputs are plain values. Endpoints with inputs are
// built from a params struct through a constructor that validates it:
//
//	ep, err := trading.NewAsset(trading.AssetParams{SymbolOrAssetID: "AAPL"})
//	if err != nil {
//	    return err // *validation.Error
//	}
//	asset, err := alpaca.Query[trading.AssetInfo](ctx, ep, client)
//
// Money and quantity fields use decimal.Decimal, identifiers uuid.UUID.
package trading
