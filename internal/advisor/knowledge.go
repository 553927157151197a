package advisor

var cropSpacing = map[string]string{
	"wheat":      "Row spacing: 20-25 cm, Plant spacing: 5-7 cm",
	"rice":       "Row spacing: 20-25 cm, Plant spacing: 15-20 cm",
	"maize":      "Row spacing: 60-75 cm, Plant spacing: 20-25 cm",
	"cotton":     "Row spacing: 90-120 cm, Plant spacing: 30-45 cm",
	"pulses":     "Row spacing: 30-45 cm, Plant spacing: 10-15 cm",
	"vegetables": "Varies by crop: Tomatoes (60x45 cm), Onions (15x10 cm), Potatoes (60x25 cm)",
}

var irrigationSchedule = map[string]string{
	"wheat":  "Critical stages: Crown root, Tillering, Jointing, Flowering, Grain filling",
	"rice":   "Maintain 5-7 cm water level during vegetative phase",
	"maize":  "Irrigate at 7-10 day intervals, critical at tasseling",
	"cotton": "Irrigate at 10-15 day intervals, avoid waterlogging",
}

var marketTiming = map[string]string{
	"wheat":      "Best selling time: March-April when prices are high",
	"rice":       "Sell during October-December for better prices",
	"vegetables": "Avoid glut periods, target off-season markets",
	"pulses":     "Store and sell during lean periods for premium prices",
}

// Cereals get the split urea schedule on top of the sowing dose.
var cereals = map[string]bool{"wheat": true, "rice": true, "maize": true}

var cropOverview = map[string]string{
	"wheat":      "Wheat is a Rabi season crop requiring moderate water. Best suited for loamy soils. Sowing: Oct-Nov, Harvest: Mar-Apr. Expected yield: 3-4 tons/acre.",
	"rice":       "Rice is a Kharif season crop requiring high water. Best suited for clay soils. Sowing: Jun-Jul, Harvest: Oct-Nov. Expected yield: 4-5 tons/acre.",
	"maize":      "Maize can be grown in both Kharif and Rabi seasons. Moderate water requirement. Sowing: Jun-Jul or Jan-Feb. Expected yield: 3-4 tons/acre.",
	"cotton":     "Cotton is a Kharif season crop. Moderate water requirement. Sowing: May-Jun, Harvest: Oct-Dec. Expected yield: 1.5-2 bales/acre.",
	"pulses":     "Pulses are Rabi season crops with low water requirement. Sowing: Oct-Nov, Harvest: Mar-Apr. Good for soil health and crop rotation.",
	"vegetables": "Vegetables can be grown year-round with proper management. High value crops requiring intensive care. Good for small landholdings.",
}

var topicOverview = map[string]string{
	TopicSpacing:    "Proper crop spacing is crucial for optimal growth. It ensures adequate sunlight, air circulation, and nutrient availability. Follow recommended spacing for your crop and soil type.",
	TopicFertilizer: "Fertilizer application should be based on soil test results. Use balanced NPK fertilizers and organic manures. Apply at recommended rates and timings for best results.",
	TopicIrrigation: "Irrigation should be based on crop stage, soil type, and weather conditions. Avoid over-irrigation and waterlogging. Use efficient irrigation methods like drip or sprinkler.",
	TopicPest:       "Integrated Pest Management (IPM) is the best approach. Monitor regularly, use resistant varieties, and apply pesticides only when necessary. Consider biological control methods.",
	TopicSoil:       "Soil health is fundamental for good crop production. Regular soil testing, organic matter addition, and proper crop rotation help maintain soil fertility.",
	TopicWeather:    "Weather monitoring is essential for farming decisions. Use weather forecasts for planning operations. Implement protective measures during extreme weather events.",
	TopicMarket:     "Market timing is crucial for better returns. Monitor price trends, avoid glut periods, and consider storage facilities. Government schemes can help with marketing.",
	TopicScheme:     "Several government schemes support farmers: PMFBY for crop insurance, PMKSY for irrigation, Soil Health Card for soil testing, and Kisan Credit Card for easy credit.",
}

var generalAnswers = []string{
	"I'm here to help with your farming questions! You can ask about crop spacing, fertilizers, irrigation, pest management, soil health, weather management, market timing, or government schemes.",
	"For specific advice, please mention the crop name (like wheat, rice, maize) and the topic (like spacing, fertilizer, irrigation).",
	"I can provide guidance on various farming topics. What specific aspect of farming would you like to know more about?",
	"Feel free to ask about any farming-related topic. I can help with crop recommendations, pest management, soil health, and more.",
	"I'm your farming assistant! Ask me about crops, techniques, government schemes, or any agricultural topic.",
}

var generalTips = []string{
	"Always test your soil before applying fertilizers",
	"Practice crop rotation to improve soil health",
	"Use integrated pest management (IPM) approach",
	"Monitor weather forecasts regularly",
	"Keep records of your farming activities",
	"Use quality seeds from reliable sources",
	"Maintain proper irrigation scheduling",
	"Consider organic farming practices",
	"Plan your crop calendar in advance",
	"Stay updated with government schemes",
}

var cropTips = map[string][]string{
	"wheat": {
		"Sow wheat at proper time (Oct-Nov)",
		"Apply irrigation at critical growth stages",
		"Control weeds early in the season",
		"Harvest when grain moisture is 20-25%",
	},
	"rice": {
		"Maintain proper water level during growth",
		"Use certified seeds for better yield",
		"Control pests like stem borer",
		"Harvest at proper maturity stage",
	},
	"maize": {
		"Ensure proper spacing for good yield",
		"Apply nitrogen in splits",
		"Control fall armyworm if present",
		"Harvest when kernels are hard",
	},
}

// Emergency situations with canned advice.
const (
	EmergencyDrought      = "drought"
	EmergencyFlood        = "flood"
	EmergencyPestOutbreak = "pest_outbreak"
	EmergencyDisease      = "disease"
	EmergencyFrost        = "frost"
	EmergencyHeatWave     = "heat_wave"
)

var emergencyAdvice = map[string]string{
	EmergencyDrought:      "During drought: Use drought-resistant varieties, mulching, and efficient irrigation. Consider crop insurance under PMFBY.",
	EmergencyFlood:        "During flood: Ensure proper drainage, avoid waterlogging, and use flood-tolerant varieties if available.",
	EmergencyPestOutbreak: "For pest outbreak: Identify the pest correctly, use recommended pesticides, and consider biological control methods.",
	EmergencyDisease:      "For disease outbreak: Remove infected plants, use fungicides, and improve air circulation.",
	EmergencyFrost:        "During frost: Use frost protection measures like irrigation, windbreaks, and cover crops.",
	EmergencyHeatWave:     "During heat wave: Increase irrigation frequency, provide shade, and use heat-tolerant varieties.",
}

const fallbackEmergency = "Please contact your local agricultural extension officer for immediate assistance."
