package client

type CarPriceRequest struct {
	Year         int     `json:"year"`
	PresentPrice float64 `json:"presentPrice"`
	KmsDriven    float64 `json:"kmsDriven"`
	Mileage      float64 `json:"mileage"`
	FuelType     string  `json:"fuelType"`
	SellerType   string  `json:"sellerType"`
	Transmission string  `json:"transmission"`
	Owner        string  `json:"owner"`
}

type SalesRequest struct {
	TV        float64 `json:"tv"`
	Radio     float64 `json:"radio"`
	Newspaper float64 `json:"newspaper"`
}

type SpamRequest struct {
	Text string `json:"text"`
}

type IrisRequest struct {
	SepalLength float64 `json:"sepalLength"`
	SepalWidth  float64 `json:"sepalWidth"`
	PetalLength float64 `json:"petalLength"`
	PetalWidth  float64 `json:"petalWidth"`
}

type IrisPrediction struct {
	Species       string  `json:"species"`
	Confidence    float64 `json:"confidence"`
	Accuracy      float64 `json:"accuracy"`
	Probabilities []struct {
		Label       string  `json:"label"`
		Probability float64 `json:"probability"`
	} `json:"probabilities"`
}

// DashboardQuery selects unemployment rows. Zero values use the server
// defaults.
type DashboardQuery struct {
	Regions []string
	Start   string
	End     string
}
