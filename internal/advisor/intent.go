// Package advisor answers free-text farming questions from a static
// knowledge base. It is independent of the planning pipeline.
package advisor

import "strings"

// Intent types, from most to least specific.
const (
	IntentSpecificAdvice = "specific_advice"
	IntentCropGeneral    = "crop_general"
	IntentTopicGeneral   = "topic_general"
	IntentGeneral        = "general"
)

// Intent is what a question is about. Crop and Topic are empty when not
// detected.
type Intent struct {
	Type       string  `json:"type"`
	Crop       string  `json:"crop,omitempty"`
	Topic      string  `json:"topic,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Classifier maps question text to an intent.
type Classifier interface {
	Classify(text string) Intent
}

// Topics, in matching order.
const (
	TopicSpacing    = "spacing"
	TopicFertilizer = "fertilizer"
	TopicIrrigation = "irrigation"
	TopicPest       = "pest"
	TopicSoil       = "soil"
	TopicWeather    = "weather"
	TopicMarket     = "market"
	TopicScheme     = "scheme"
)

type topicKeywords struct {
	topic    string
	keywords []string
}

var defaultCrops = []string{
	"wheat", "rice", "maize", "cotton", "sugarcane",
	"pulses", "vegetables", "tomato", "onion", "potato",
}

var defaultTopics = []topicKeywords{
	{TopicSpacing, []string{"spacing", "gap", "distance", "row", "plant"}},
	{TopicFertilizer, []string{"fertilizer", "npk", "urea", "manure", "nutrient"}},
	{TopicIrrigation, []string{"irrigation", "water", "drip", "sprinkler"}},
	{TopicPest, []string{"pest", "insect", "disease", "fungus", "weed"}},
	{TopicSoil, []string{"soil", "ph", "organic", "erosion"}},
	{TopicWeather, []string{"weather", "drought", "rain", "frost", "heat"}},
	{TopicMarket, []string{"market", "price", "sell", "profit", "income"}},
	{TopicScheme, []string{"scheme", "government", "subsidy", "insurance", "loan"}},
}

// KeywordClassifier matches lower-cased substrings: the first listed crop
// found and the first topic with any keyword found.
type KeywordClassifier struct {
	crops  []string
	topics []topicKeywords
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{crops: defaultCrops, topics: defaultTopics}
}

func (k *KeywordClassifier) Classify(text string) Intent {
	text = strings.ToLower(text)
	var in Intent

	for _, crop := range k.crops {
		if strings.Contains(text, crop) {
			in.Crop = crop
			in.Confidence += 0.3
			break
		}
	}

topics:
	for _, t := range k.topics {
		for _, kw := range t.keywords {
			if strings.Contains(text, kw) {
				in.Topic = t.topic
				in.Confidence += 0.4
				break topics
			}
		}
	}

	switch {
	case in.Crop != "" && in.Topic != "":
		in.Type = IntentSpecificAdvice
		in.Confidence += 0.3
	case in.Crop != "":
		in.Type = IntentCropGeneral
		in.Confidence += 0.2
	case in.Topic != "":
		in.Type = IntentTopicGeneral
		in.Confidence += 0.2
	default:
		in.Type = IntentGeneral
	}
	return in
}
