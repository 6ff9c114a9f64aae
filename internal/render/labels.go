package render

// Labels holds every user-visible string of the page.
type Labels struct {
	Header      string
	Subheader   string
	ChartTitle  string
	SeriesName  string
	YAxis       string
	Loading     string
	ErrorPrefix string
	NoData      string
	TooltipDate string
}

// DefaultLabels returns the Russian dashboard labels.
func DefaultLabels() Labels {
	return Labels{
		Header:      "📊 График прибыльности стратегии",
		Subheader:   "Данные загружены с API",
		ChartTitle:  "Агрессивный Bybit",
		SeriesName:  "Прибыль (%)",
		YAxis:       "Прибыль (%)",
		Loading:     "Загрузка данных...",
		ErrorPrefix: "Ошибка загрузки данных: ",
		NoData:      "Нет данных для отображения",
		TooltipDate: "Дата",
	}
}
