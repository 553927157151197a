package advisor

import (
	"hash/fnv"
	"sort"
	"strings"
	"sync"
	"time"
)

// Answer is the reply to one question.
type Answer struct {
	Question string `json:"question"`
	Intent   Intent `json:"intent"`
	Text     string `json:"answer"`
}

type Advisor struct {
	classifier Classifier
}

// New returns an advisor using c, or the keyword classifier when c is nil.
func New(c Classifier) *Advisor {
	if c == nil {
		c = NewKeywordClassifier()
	}
	return &Advisor{classifier: c}
}

// Answer classifies question and replies from the knowledge base. The same
// question always gets the same answer.
func (a *Advisor) Answer(question string) Answer {
	in := a.classifier.Classify(question)

	var text string
	switch in.Type {
	case IntentSpecificAdvice:
		text = specificAdvice(in.Crop, in.Topic)
	case IntentCropGeneral:
		text = cropGeneral(in.Crop)
	case IntentTopicGeneral:
		text = topicGeneral(in.Topic)
	default:
		text = generalAnswer(question)
	}
	return Answer{Question: question, Intent: in, Text: text}
}

func specificAdvice(crop, topic string) string {
	switch topic {
	case TopicSpacing:
		info := lookup(cropSpacing, crop, "Standard spacing: 20-25 cm between rows")
		return "For " + crop + ", the recommended spacing is: " + info + ". This ensures optimal plant growth and easy management."
	case TopicFertilizer:
		if cereals[crop] {
			return "For " + crop + ", apply NPK 10:26:26 at 250 kg/acre during sowing, followed by urea 46-0-0 at 100 kg/acre in 2-3 splits. Also apply 5-10 tons of farmyard manure per acre."
		}
		return "For " + crop + ", apply balanced NPK fertilizer based on soil test results. Organic manure application of 5-10 tons/acre is recommended."
	case TopicIrrigation:
		info := lookup(irrigationSchedule, crop, "Irrigate based on soil moisture and crop stage")
		return "For " + crop + ": " + info + ". Monitor soil moisture regularly and avoid waterlogging."
	case TopicPest:
		return "For " + crop + " pest management: Monitor regularly for pests and diseases. Use integrated pest management (IPM) approach. Apply recommended pesticides only when necessary."
	case TopicSoil:
		return "For " + crop + " soil management: Test soil pH every 2-3 years. Maintain 2-3% organic matter. Practice crop rotation to improve soil health."
	case TopicWeather:
		return "For " + crop + " weather management: Monitor weather forecasts regularly. Use appropriate varieties for your region. Implement protective measures during extreme weather."
	case TopicMarket:
		info := lookup(marketTiming, crop, "Monitor market prices and sell when prices are favorable")
		return "For " + crop + ": " + info + ". Consider storage facilities for better price realization."
	default:
		return "For " + crop + " " + topic + ": Please consult local agricultural experts for specific recommendations based on your location and conditions."
	}
}

func cropGeneral(crop string) string {
	return lookup(cropOverview, crop, crop+" is a valuable crop. Consult local agricultural experts for specific recommendations.")
}

func topicGeneral(topic string) string {
	return lookup(topicOverview, topic, "This is an important aspect of farming. Consult local agricultural experts for specific guidance.")
}

// generalAnswer picks a canned reply by hashing the question.
func generalAnswer(question string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(question))))
	return generalAnswers[h.Sum32()%uint32(len(generalAnswers))]
}

func lookup(table map[string]string, key, fallback string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}

// Tips returns crop specific tips, or the general tips when crop is empty
// or has none.
func Tips(crop string) []string {
	src, ok := cropTips[strings.ToLower(crop)]
	if !ok {
		src = generalTips
	}
	return append([]string(nil), src...)
}

// EmergencyAdvice returns the advice for situation, one of the Emergency
// constants.
func EmergencyAdvice(situation string) string {
	return lookup(emergencyAdvice, strings.ToLower(situation), fallbackEmergency)
}

// Emergencies lists the situations EmergencyAdvice knows.
func Emergencies() []string {
	out := make([]string, 0, len(emergencyAdvice))
	for k := range emergencyAdvice {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Exchange is one question and its answer.
type Exchange struct {
	Answer
	At time.Time `json:"at"`
}

// ConversationSummary reports how many questions were asked and which crops
// and topics came up, in first-mention order.
type ConversationSummary struct {
	TotalExchanges  int       `json:"totalExchanges"`
	TopicsDiscussed []string  `json:"topicsDiscussed"`
	LastInteraction time.Time `json:"lastInteraction,omitempty"`
}

// Conversation records the exchanges with one farmer. Safe for concurrent use.
type Conversation struct {
	advisor *Advisor
	now     func() time.Time

	mu        sync.Mutex
	exchanges []Exchange
}

func (a *Advisor) Conversation(now func() time.Time) *Conversation {
	if now == nil {
		now = time.Now
	}
	return &Conversation{advisor: a, now: now}
}

func (c *Conversation) Ask(question string) Answer {
	ans := c.advisor.Answer(question)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.exchanges = append(c.exchanges, Exchange{Answer: ans, At: c.now()})
	return ans
}

func (c *Conversation) Summary() ConversationSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := ConversationSummary{TotalExchanges: len(c.exchanges), TopicsDiscussed: []string{}}
	seen := make(map[string]bool)
	for _, ex := range c.exchanges {
		for _, v := range []string{ex.Intent.Topic, ex.Intent.Crop} {
			if v != "" && !seen[v] {
				seen[v] = true
				s.TopicsDiscussed = append(s.TopicsDiscussed, v)
			}
		}
	}
	if n := len(c.exchanges); n > 0 {
		s.LastInteraction = c.exchanges[n-1].At
	}
	return s
}
