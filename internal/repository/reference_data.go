package repository

import "github.com/epeers/investdash/internal/models"

type assetRow struct {
	name         string
	price        float64
	fundamentals []models.Fundamental
}

func f(label string, value any) models.Fundamental {
	return models.Fundamental{Label: label, Value: value}
}

var equityCodes = []string{"BBCA", "TLKM", "GOTO", "ASII", "BBNI", "BMRI"}

var equityTable = map[string]assetRow{
	"BBCA": {"Bank Central Asia Tbk.", 9750, []models.Fundamental{f("P/E Ratio", 25.5), f("P/B Ratio", 4.8), f("EPS", 382), f("ROE", "18.8%")}},
	"TLKM": {"Telkom Indonesia (Persero) Tbk.", 3100, []models.Fundamental{f("P/E Ratio", 14.2), f("P/B Ratio", 2.5), f("EPS", 218), f("ROE", "17.6%")}},
	"GOTO": {"GoTo Gojek Tokopedia Tbk.", 55, []models.Fundamental{f("P/E Ratio", "N/A"), f("P/B Ratio", 0.8), f("EPS", -15), f("Market Cap", "Rp 65T")}},
	"ASII": {"Astra International Tbk.", 5150, []models.Fundamental{f("P/E Ratio", 8.9), f("P/B Ratio", 1.1), f("EPS", 578), f("Dividend Yield", "5.5%")}},
	"BBNI": {"Bank Negara Indonesia (Persero) Tbk.", 4700, []models.Fundamental{f("P/E Ratio", 7.5), f("P/B Ratio", 1.0), f("EPS", 626), f("NIM", "4.5%")}},
	"BMRI": {"Bank Mandiri (Persero) Tbk.", 6050, []models.Fundamental{f("P/E Ratio", 9.2), f("P/B Ratio", 1.8), f("EPS", 657), f("CAR", "22.1%")}},
}

var cryptoCodes = []string{"BTC", "ETH", "DOGE"}

var cryptoTable = map[string]assetRow{
	"BTC":  {"Bitcoin", 1100000000, []models.Fundamental{f("Market Cap", "Rp 21.000T"), f("Circulating Supply", "19.7M"), f("24h Volume", "Rp 500T"), f("Dominance", "52%")}},
	"ETH":  {"Ethereum", 58000000, []models.Fundamental{f("Market Cap", "Rp 7.000T"), f("Circulating Supply", "120M"), f("24h Volume", "Rp 250T"), f("Gas Fee", "15 Gwei")}},
	"DOGE": {"Dogecoin", 2000, []models.Fundamental{f("Market Cap", "Rp 280T"), f("Circulating Supply", "144B"), f("24h Volume", "Rp 20T"), f("Inflationary", "Yes")}},
}

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun"}

func series(prices, volumes, k, d []float64) models.ChartSeries {
	return models.ChartSeries{TimeLabels: monthLabels, Prices: prices, Volumes: volumes, StochasticK: k, StochasticD: d}
}

func millions(v ...float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * 1000000
	}
	return out
}

var equityCharts = map[string]models.ChartSeries{
	"BBCA": series([]float64{8800, 9100, 9300, 9250, 9500, 9750}, []float64{100, 120, 110, 130, 90, 150}, []float64{70, 80, 85, 75, 88, 92}, []float64{65, 72, 79, 78, 82, 87}),
	"TLKM": series([]float64{4000, 3900, 3850, 3500, 3200, 3100}, []float64{200, 180, 210, 250, 300, 280}, []float64{85, 60, 45, 20, 15, 10}, []float64{88, 75, 60, 40, 25, 15}),
	"GOTO": series([]float64{90, 85, 70, 60, 50, 55}, []float64{500, 520, 510, 530, 490, 550}, []float64{40, 30, 25, 15, 10, 12}, []float64{45, 35, 30, 20, 15, 14}),
	"ASII": series([]float64{5500, 5400, 5300, 5200, 5100, 5150}, []float64{150, 160, 140, 170, 130, 180}, []float64{60, 50, 40, 30, 25, 35}, []float64{65, 55, 45, 35, 30, 32}),
	"BBNI": series([]float64{4500, 4600, 4800, 4750, 4650, 4700}, []float64{120, 130, 110, 140, 100, 150}, []float64{75, 85, 90, 80, 70, 78}, []float64{70, 78, 85, 82, 75, 77}),
	"BMRI": series([]float64{5800, 5900, 6000, 6100, 6050, 6050}, []float64{180, 190, 170, 200, 160, 210}, []float64{80, 88, 92, 85, 82, 80}, []float64{75, 82, 88, 86, 83, 81}),
}

var cryptoCharts = map[string]models.ChartSeries{
	"BTC":  series(millions(950, 1000, 1150, 1050, 1080, 1100), []float64{50, 60, 70, 55, 65, 80}, []float64{60, 75, 90, 70, 80, 85}, []float64{55, 65, 80, 75, 78, 82}),
	"ETH":  series(millions(40, 45, 55, 50, 52, 58), []float64{100, 110, 130, 90, 105, 120}, []float64{50, 70, 88, 65, 75, 85}, []float64{45, 60, 78, 70, 72, 80}),
	"DOGE": series([]float64{1800, 1900, 2200, 1950, 2100, 2000}, []float64{1000, 1100, 1300, 900, 1050, 1200}, []float64{40, 60, 78, 55, 65, 60}, []float64{35, 50, 68, 60, 62, 58}),
}

func opts(texts ...string) []models.RiskOption {
	out := make([]models.RiskOption, len(texts))
	for i, t := range texts {
		out[i] = models.RiskOption{Text: t, Weight: i + 1}
	}
	return out
}

var riskQuestions = []models.RiskQuestion{
	{Question: "Apa tujuan utama investasi Anda?", Options: opts("Menjaga nilai pokok modal (sangat anti risiko)", "Pendapatan rutin dan pertumbuhan modal minim", "Keseimbangan pendapatan dan pertumbuhan modal", "Pertumbuhan modal jangka panjang, siap hadapi fluktuasi", "Pertumbuhan modal maksimal (spekulasi), siap rugi besar")},
	{Question: "Berapa lama horizon waktu investasi Anda?", Options: opts("< 1 tahun", "1-3 tahun", "3-5 tahun", "5-10 tahun", "> 10 tahun")},
	{Question: "Jika portofolio Anda anjlok 25% dalam sebulan, apa reaksi Anda?", Options: opts("Panik dan jual semua aset", "Jual sebagian untuk mengurangi kerugian", "Tidak melakukan apa-apa dan menunggu", "Membeli lebih banyak karena harga murah (average down)", "Membeli lebih banyak dengan agresif")},
	{Question: "Berapa persen dari pendapatan Anda yang dialokasikan untuk investasi?", Options: opts("< 5%", "5-10%", "11-20%", "21-30%", "> 30%")},
	{Question: "Seberapa penting likuiditas (kemudahan aset dicairkan) bagi Anda?", Options: opts("Sangat penting, butuh dana cepat", "Cukup penting", "Netral", "Tidak terlalu penting", "Sama sekali tidak penting")},
	{Question: "Mana deskripsi yang paling cocok dengan pengetahuan investasi Anda?", Options: opts("Pemula, baru belajar", "Mengerti dasar-dasar", "Cukup berpengalaman", "Berpengalaman dan mengikuti pasar", "Sangat ahli, sering riset mendalam")},
	{Question: "Instrumen apa yang paling Anda minati?", Options: opts("Deposito & Obligasi Pemerintah", "Reksadana Pendapatan Tetap", "Reksadana Campuran & Saham Blue Chip", "Saham lapis dua/tiga & Kripto besar", "Kripto alternatif & instrumen derivatif")},
	{Question: "Seberapa nyaman Anda dengan utang untuk investasi (leverage)?", Options: opts("Sangat tidak nyaman", "Cenderung menghindari", "Mungkin mempertimbangkan dalam jumlah kecil", "Nyaman jika peluangnya bagus", "Sangat nyaman, bagian dari strategi")},
	{Question: "Bagaimana perasaan Anda saat melihat keuntungan yang belum direalisasi (unrealized profit)?", Options: opts("Segera jual untuk mengamankan keuntungan", "Jual sebagian", "Tahan sesuai rencana awal", "Tahan dan berharap naik lebih tinggi", "Menambah posisi untuk keuntungan lebih besar")},
	{Question: "Pilih skenario imbal hasil/risiko yang paling Anda sukai.", Options: opts("Untung 5%, potensi rugi 1%", "Untung 10%, potensi rugi 5%", "Untung 20%, potensi rugi 15%", "Untung 40%, potensi rugi 30%", "Untung 70%, potensi rugi 60%")},
}

var analysisModels = []models.AnalysisModel{
	{ID: "lstm", Name: "LSTM", Description: "Model deep learning untuk data sekuensial."},
	{ID: "arima", Name: "ARIMA", Description: "Model statistik klasik untuk data time series."},
	{ID: "prophet", Name: "Prophet", Description: "Model dari Facebook untuk peramalan dengan musiman."},
	{ID: "randomforest", Name: "Random Forest", Description: "Ensemble learning untuk akurasi prediksi."},
	{ID: "xgboost", Name: "Gradient Boosting", Description: "Model tree-based yang sangat populer dan kuat."},
	{ID: "svm", Name: "Support Vector Machine", Description: "Efektif untuk klasifikasi tren naik/turun."},
}

var newsArticles = []models.NewsArticle{
	{Category: "Pasar Modal", Title: "IHSG Melesat 2%, Investor Masuk Ke Saham Blue Chip", Source: "Bisnis Indonesia", Date: "8 Juni 2025", Snippet: "Indeks Harga Saham Gabungan (IHSG) melonjak 2% didorong oleh optimisme investor yang beralih ke saham blue chip setelah data ekonomi yang positif.", Image: "https://picsum.photos/seed/IHSG/600/400"},
	{Category: "Pasar Saham", Title: "Emiten Telekomunikasi Raih Kinerja Cemerlang di Kuartal I", Source: "Kontan", Date: "8 Juni 2025", Snippet: "Beberapa emiten telekomunikasi berhasil mencatatkan kenaikan laba yang signifikan pada kuartal pertama 2025, didorong oleh peningkatan pengguna dan tarif yang stabil.", Image: "https://picsum.photos/seed/Telekomunikasi/600/400"},
	{Category: "Ekonomi Makro", Title: "Pemerintah Indonesia Tangguhkan Rencana Peningkatan Pajak", Source: "Detik Finance", Date: "8 Juni 2025", Snippet: "Pemerintah Indonesia memutuskan untuk menangguhkan rencana peningkatan pajak untuk mendukung pemulihan ekonomi pasca pandemi.", Image: "https://picsum.photos/seed/Pajak/600/400"},
	{Category: "Investasi", Title: "Kepemilikan Emas Terus Meningkat, Investor Masih Optimis", Source: "Investor Daily", Date: "8 Juni 2025", Snippet: "Kepemilikan emas di kalangan investor domestik terus meningkat, mengingat ketidakpastian ekonomi global dan tingginya inflasi di negara maju.", Image: "https://picsum.photos/seed/Emas/600/400"},
	{Category: "Banking", Title: "BCA Catat Laba Bersih Rp 7 Triliun di Semester I 2025", Source: "Jakarta Post", Date: "8 Juni 2025", Snippet: "Bank Central Asia (BCA) mencatatkan laba bersih sebesar Rp 7 triliun di semester pertama 2025, didorong oleh pertumbuhan kredit yang kuat dan efisiensi operasional.", Image: "https://picsum.photos/seed/BBCAnews/600/400"},
	{Category: "Investasi", Title: "Reksa Dana Saham Menjadi Pilihan Investasi Populer di 2025", Source: "Tribun Finance", Date: "8 Juni 2025", Snippet: "Reksa dana saham menjadi pilihan utama investor lokal di 2025, dengan banyaknya yang mencari investasi yang lebih menguntungkan dibandingkan dengan deposito.", Image: "https://picsum.photos/seed/ReksaDana/600/400"},
}

type seedHolding struct {
	class    models.AssetClass
	code     string
	quantity string
	avgCost  string
}

var initialPortfolio = []seedHolding{
	{models.AssetClassEquity, "BBCA", "10", "9250"},
	{models.AssetClassEquity, "TLKM", "50", "3800"},
	{models.AssetClassCrypto, "BTC", "0.05", "1000000000"},
}

// simulated dashboard history, in millions of rupiah
var portfolioValueHistory = []float64{1000, 1100, 1250, 1150, 1300, 1350}
