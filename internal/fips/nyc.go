package fips

// NYC identifies the combined five-borough row in the county case source.
const (
	NYCName  = "New York City"
	NYCState = "New York"
)

// Borough is a New York City county.
type Borough struct {
	County string
	FIPS   string
}

// NYCBoroughs lists the counties folded into the combined New York City row.
var NYCBoroughs = []Borough{
	{County: "Bronx", FIPS: "36005"},
	{County: "Kings", FIPS: "36047"},
	{County: "New York", FIPS: "36061"},
	{County: "Queens", FIPS: "36081"},
	{County: "Richmond", FIPS: "36085"},
}

// IsNYC reports whether a county/state pair names the combined borough row.
func IsNYC(county, state string) bool {
	return county == NYCName && state == NYCState
}
