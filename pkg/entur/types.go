package entur

// Wire structs mirroring the journey planner GraphQL document.

type graphqlRequest struct {
	Query string `json:"query"`
}

type graphqlResponse struct {
	Data struct {
		StopPlace *stopPlace `json:"stopPlace"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type stopPlace struct {
	Name           string          `json:"name"`
	EstimatedCalls []estimatedCall `json:"estimatedCalls"`
}

type estimatedCall struct {
	ExpectedArrivalTime string `json:"expectedArrivalTime"`
	AimedArrivalTime    string `json:"aimedArrivalTime"`
	Realtime            bool   `json:"realtime"`
	DestinationDisplay  struct {
		FrontText string `json:"frontText"`
	} `json:"destinationDisplay"`
	ServiceJourney struct {
		Line struct {
			PublicCode    string `json:"publicCode"`
			TransportMode string `json:"transportMode"`
		} `json:"line"`
	} `json:"serviceJourney"`
}
