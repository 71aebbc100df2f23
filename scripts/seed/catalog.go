package main

import "time"

var brands = []string{
	"Chanel", "Dior", "Gucci", "Versace", "Tom Ford", "Creed",
	"YSL", "Calvin Klein", "Hermes", "Armani", "Jo Malone", "Lancome",
}

type seedProduct struct {
	name        string
	brand       string
	price       float64
	stock       int
	gender      string
	volume      string
	rating      *float64
	ratingCount *int
	hot         *bool
}

func rated(avg float64, count int) (*float64, *int) {
	return &avg, &count
}

func flag(v bool) *bool { return &v }

var products = func() []seedProduct {
	type row struct {
		name, brand    string
		price          float64
		stock          int
		gender, volume string
		avg            float64
		count          int
		hot            bool
	}
	rows := []row{
		{"Chanel Bleu de Chanel EDP", "Chanel", 3650000, 12, "NAM", "100ML", 4.8, 126, true},
		{"Chanel Coco Mademoiselle", "Chanel", 3900000, 8, "NU", "100ML", 4.7, 98, false},
		{"Chanel Chance Eau Tendre", "Chanel", 2950000, 0, "NU", "50ML", 4.6, 41, false},
		{"Dior Sauvage EDT", "Dior", 2850000, 20, "NAM", "100ML", 4.9, 210, true},
		{"Dior Miss Dior Blooming Bouquet", "Dior", 2650000, 6, "NU", "50ML", 4.5, 64, false},
		{"Gucci Bloom", "Gucci", 2450000, 9, "NU", "100ML", 4.4, 37, true},
		{"Gucci Guilty Pour Homme", "Gucci", 2100000, 4, "NAM", "90ML", 4.2, 22, false},
		{"Versace Eros", "Versace", 1650000, 15, "NAM", "100ML", 4.6, 143, true},
		{"Versace Bright Crystal", "Versace", 1550000, 11, "NU", "90ML", 4.3, 58, false},
		{"Tom Ford Oud Wood", "Tom Ford", 6900000, 3, "UNISEX", "50ML", 4.8, 19, false},
		{"Creed Aventus", "Creed", 8500000, 2, "NAM", "100ML", 4.9, 33, true},
		{"YSL Libre", "YSL", 3200000, 7, "NU", "90ML", 4.6, 45, false},
		{"YSL Y EDP", "YSL", 2900000, 0, "NAM", "100ML", 4.5, 27, false},
		{"Calvin Klein CK One", "Calvin Klein", 950000, 30, "UNISEX", "200ML", 4.1, 88, false},
		{"Hermes Terre d'Hermes", "Hermes", 3100000, 5, "NAM", "75ML", 4.7, 31, false},
		{"Armani Acqua di Gio", "Armani", 2350000, 10, "NAM", "100ML", 4.6, 102, false},
		{"Jo Malone Wood Sage & Sea Salt", "Jo Malone", 3400000, 6, "UNISEX", "100ML", 4.4, 16, false},
		{"Lancome La Vie Est Belle", "Lancome", 2750000, 8, "NU", "75ML", 4.7, 76, true},
		{"Lancome Idole Mini", "Lancome", 450000, 25, "NU", "10ML", 0, 0, false},
		{"Calvin Klein Eternity Mini", "Calvin Klein", 390000, 18, "NAM", "30ML", 0, 0, false},
	}
	out := make([]seedProduct, 0, len(rows))
	for _, r := range rows {
		p := seedProduct{
			name:   r.name,
			brand:  r.brand,
			price:  r.price,
			stock:  r.stock,
			gender: r.gender,
			volume: r.volume,
			hot:    flag(r.hot),
		}
		if r.count > 0 {
			p.rating, p.ratingCount = rated(r.avg, r.count)
		}
		out = append(out, p)
	}
	return out
}()

type seedLine struct {
	product  string
	quantity int
}

type seedOrder struct {
	code     string
	placedAt time.Time
	lines    []seedLine
}

var orders = []seedOrder{
	{"SO-0001", time.Date(2025, 1, 4, 10, 0, 0, 0, time.UTC), []seedLine{{"Dior Sauvage EDT", 2}, {"Versace Eros", 1}}},
	{"SO-0002", time.Date(2025, 1, 9, 14, 30, 0, 0, time.UTC), []seedLine{{"Chanel Bleu de Chanel EDP", 1}}},
	{"SO-0003", time.Date(2025, 2, 1, 9, 15, 0, 0, time.UTC), []seedLine{{"Dior Sauvage EDT", 3}, {"Gucci Bloom", 1}}},
	{"SO-0004", time.Date(2025, 2, 14, 19, 45, 0, 0, time.UTC), []seedLine{{"Chanel Coco Mademoiselle", 2}, {"Lancome La Vie Est Belle", 2}}},
	{"SO-0005", time.Date(2025, 3, 3, 11, 5, 0, 0, time.UTC), []seedLine{{"Calvin Klein CK One", 4}}},
	{"SO-0006", time.Date(2025, 3, 20, 16, 40, 0, 0, time.UTC), []seedLine{{"Versace Eros", 2}, {"Armani Acqua di Gio", 1}}},
	{"SO-0007", time.Date(2025, 4, 8, 13, 0, 0, 0, time.UTC), []seedLine{{"Creed Aventus", 1}, {"Dior Sauvage EDT", 1}}},
	{"SO-0008", time.Date(2025, 4, 22, 10, 25, 0, 0, time.UTC), []seedLine{{"YSL Libre", 1}, {"Lancome Idole Mini", 3}}},
}
