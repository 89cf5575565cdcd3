package xmlutils

import "gopkg.in/xmlpath.v2"

// CBRDaily holds the compiled XPath expressions for the Central Bank of Russia
// daily rates feed (XML_daily.asp).
type CBRDaily struct {
	Date     *xmlpath.Path
	Valute   *xmlpath.Path
	CharCode *xmlpath.Path
	Nominal  *xmlpath.Path
	Value    *xmlpath.Path
}

// DefaultCBRDailyXPaths returns the expressions for the current feed layout.
// CharCode, Nominal and Value are relative to a Valute node.
func DefaultCBRDailyXPaths() CBRDaily {
	return CBRDaily{
		Date:     xmlpath.MustCompile("/ValCurs/@Date"),
		Valute:   xmlpath.MustCompile("/ValCurs/Valute"),
		CharCode: xmlpath.MustCompile("CharCode"),
		Nominal:  xmlpath.MustCompile("Nominal"),
		Value:    xmlpath.MustCompile("Value"),
	}
}
