package api

// Static catalog of major tech symbols served by GET /api/symbols.
// Kept in-process; the venue itself does not gate orders on membership.
var symbolCatalog = []SymbolInfo{
	{Symbol: "AAPL", Name: "Apple Inc."},
	{Symbol: "MSFT", Name: "Microsoft Corporation"},
	{Symbol: "AMZN", Name: "Amazon.com Inc."},
	{Symbol: "GOOGL", Name: "Alphabet Inc. (Google)"},
	{Symbol: "META", Name: "Meta Platforms Inc."},
	{Symbol: "NVDA", Name: "NVIDIA Corporation"},
	{Symbol: "TSLA", Name: "Tesla Inc."},
	{Symbol: "AMD", Name: "Advanced Micro Devices"},
	{Symbol: "INTC", Name: "Intel Corporation"},
	{Symbol: "CSCO", Name: "Cisco Systems Inc."},
	{Symbol: "ADBE", Name: "Adobe Inc."},
	{Symbol: "PYPL", Name: "PayPal Holdings Inc."},
	{Symbol: "CMCSA", Name: "Comcast Corporation"},
	{Symbol: "PEP", Name: "PepsiCo Inc."},
	{Symbol: "COST", Name: "Costco Wholesale Corporation"},
	{Symbol: "TMUS", Name: "T-Mobile US Inc."},
	{Symbol: "QCOM", Name: "QUALCOMM Inc."},
	{Symbol: "GILD", Name: "Gilead Sciences Inc."},
	{Symbol: "MDLZ", Name: "Mondelez International Inc."},
	{Symbol: "ADP", Name: "Automatic Data Processing Inc."},
}
