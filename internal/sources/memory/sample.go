package memory

import "superstore/internal/core"

// sampleRows is a small slice of the Superstore sample, in source order.
var sampleRows = [][]string{
	{"Furniture", "Consumer", "Bookcases", "2016-11-08", "261.96", "41.9136"},
	{"Furniture", "Consumer", "Chairs", "2016-11-08", "731.94", "219.582"},
	{"Office Supplies", "Corporate", "Labels", "2016-06-12", "14.62", "6.8714"},
	{"Furniture", "Consumer", "Tables", "2015-10-11", "957.5775", "-383.031"},
	{"Office Supplies", "Consumer", "Storage", "2015-10-11", "22.368", "2.5164"},
	{"Furniture", "Consumer", "Furnishings", "2014-06-09", "48.86", "14.1694"},
	{"Office Supplies", "Consumer", "Art", "2014-06-09", "7.28", "1.9656"},
	{"Technology", "Consumer", "Phones", "2014-06-09", "907.152", "90.7152"},
	{"Office Supplies", "Consumer", "Binders", "2014-06-09", "18.504", "5.7825"},
	{"Office Supplies", "Consumer", "Appliances", "2014-06-09", "114.9", "34.47"},
	{"Furniture", "Consumer", "Tables", "2014-06-09", "1706.184", "85.3092"},
	{"Technology", "Consumer", "Phones", "2014-06-09", "911.424", "68.3568"},
	{"Office Supplies", "Consumer", "Paper", "2017-04-15", "15.552", "5.4432"},
	{"Office Supplies", "Home Office", "Binders", "2016-12-05", "407.976", "132.5922"},
	{"Office Supplies", "Consumer", "Appliances", "2015-11-22", "68.81", "-123.858"},
	{"Technology", "Corporate", "Accessories", "2017-09-25", "114.9", "34.47"},
}

// Sample returns a store holding a small built-in dataset.
func Sample() *Store {
	return New(core.RequiredColumns, sampleRows).Named("memory:sample")
}
