package spam

import "time"

type Config struct {
	RequestTimeout     time.Duration `envconfig:"INSIGHT_SPAM_REQUEST_TIMEOUT" default:"10s"`
	VectorizerArtifact string        `envconfig:"INSIGHT_SPAM_VECTORIZER_ARTIFACT" default:"models/vectorizer.json"`
	ClassifierArtifact string        `envconfig:"INSIGHT_SPAM_CLASSIFIER_ARTIFACT" default:"models/spam_model.json"`
	// SpamLabel is the classifier label that marks spam.
	SpamLabel  string `envconfig:"INSIGHT_SPAM_LABEL" default:"1"`
	MaxTextLen int    `envconfig:"INSIGHT_SPAM_MAX_TEXT_LEN" default:"100000"`
}
