package model

// PriceStatistics holds descriptive statistics over a price vector. Defined
// is false when the vector was empty; consumers must not read the numeric
// fields in that case.
type PriceStatistics struct {
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	Std     float64 `json:"std"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Defined bool    `json:"defined"`
}

// QuartileAnalysis holds the box-plot quartiles and fences.
type QuartileAnalysis struct {
	Q1         float64 `json:"q1"`
	Q2Median   float64 `json:"q2_median"`
	Q3         float64 `json:"q3"`
	IQR        float64 `json:"iqr"`
	LowerFence float64 `json:"lower_fence"`
	UpperFence float64 `json:"upper_fence"`
	Defined    bool    `json:"defined"`
}

// DistributionAnalysis describes the shape of the price distribution and the
// outcome of the normality test.
type DistributionAnalysis struct {
	Skewness          float64 `json:"skewness"`
	Kurtosis          float64 `json:"kurtosis"`
	Shape             string  `json:"shape"`
	KurtosisShape     string  `json:"kurtosis_shape"`
	KSStatistic       float64 `json:"ks_statistic"`
	KSPValue          float64 `json:"ks_p_value"`
	IsNormal          bool    `json:"is_normal"`
	NormalityVerdict  string  `json:"normality_verdict"`
	Defined           bool    `json:"defined"`
}

// OutlierRecord identifies a single anomalous event.
type OutlierRecord struct {
	UUID   string  `json:"uuid"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	ZScore float64 `json:"z_score"`
}

// AnomalyReport carries the two detection methods separately plus their
// union. AnomalyRate is the union size over the non-null-price count,
// as a percentage rounded to one decimal.
type AnomalyReport struct {
	IQROutliers    []OutlierRecord `json:"iqr_outliers"`
	ZScoreOutliers []OutlierRecord `json:"z_score_outliers"`
	ZScoreSkipped  bool            `json:"z_score_skipped"`
	Combined       []OutlierRecord `json:"combined"`
	AnomalyRate    float64         `json:"anomaly_rate"`
	AnomalyRateStr string          `json:"anomaly_rate_str"`
}

// CategoryStatistics is the per-category descriptive rollup.
type CategoryStatistics struct {
	Category string          `json:"category"`
	Events   int             `json:"events"`
	Prices   PriceStatistics `json:"prices"`
}

// Report is the full output of the statistics engine.
type Report struct {
	TotalEvents    int                  `json:"total_events"`
	PricedEvents   int                  `json:"priced_events"`
	FreeEvents     int                  `json:"free_events"`
	Prices         PriceStatistics      `json:"prices"`
	Quartiles      QuartileAnalysis     `json:"quartiles"`
	Distribution   DistributionAnalysis `json:"distribution"`
	Anomalies      AnomalyReport        `json:"anomalies"`
	Categories     []CategoryStatistics `json:"categories"`
}

// WeekBucket is one point of the ISO-week time series.
type WeekBucket struct {
	Week     string  `json:"week"`
	Events   int     `json:"events"`
	AvgPrice float64 `json:"avg_price"`
}

// PriceSegment is one fixed price bucket.
type PriceSegment struct {
	Name     string  `json:"name"`
	Range    string  `json:"range"`
	Count    int     `json:"count"`
	AvgPrice float64 `json:"avg_price"`
}

// WeekdayBucket is one Monday-to-Sunday breakdown entry.
type WeekdayBucket struct {
	Day      string  `json:"day"`
	Events   int     `json:"events"`
	AvgPrice float64 `json:"avg_price"`
}

// Segmentation is the full output of the segmentation engine.
type Segmentation struct {
	TimeSeries    []WeekBucket    `json:"time_series"`
	PriceSegments []PriceSegment  `json:"price_segments"`
	DayOfWeek     []WeekdayBucket `json:"day_of_week"`
}
