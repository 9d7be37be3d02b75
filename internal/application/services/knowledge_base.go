package services

import (
	"github.com/careloop/backend/internal/domain/entities"
)

// fallbackResponse is returned when nothing in the knowledge table matches.
const fallbackResponse = "I'm not sure about that one. I can help with common topics like " +
	"hydration, sleep, nutrition, exercise, stress, headaches, fever and colds. " +
	"For anything that worries you, please talk to a healthcare professional."

const emergencyResponse = "Your message mentions symptoms that can be a medical emergency. " +
	"Please call your local emergency number or go to the nearest emergency room right now. " +
	"Do not wait for an online answer."

// knowledgeBase is the fixed canned-answer table. Order is significant:
// entries are scanned in insertion order and score ties keep the earlier
// entry, so matching is deterministic.
var knowledgeBase = []entities.KnowledgeEntry{
	{
		TopicKey: "emergency",
		Keywords: []string{
			"chest pain", "difficulty breathing", "can't breathe", "cannot breathe",
			"shortness of breath", "severe bleeding", "unconscious", "passed out",
			"stroke", "heart attack", "overdose", "suicidal",
		},
		Response:    emergencyResponse,
		IsEmergency: true,
	},
	{
		TopicKey: "hydration",
		Keywords: []string{"water", "hydration", "hydrate", "dehydrated", "thirsty", "drink"},
		Response: "Most adults do well with about 2 to 3 liters of fluid a day (roughly 8 glasses), " +
			"more in hot weather or during exercise. Pale yellow urine is a good sign you are drinking enough. " +
			"If you have kidney or heart conditions, ask your doctor about the right amount for you.",
	},
	{
		TopicKey: "headache",
		Keywords: []string{"headache", "migraine", "head hurts", "head pain"},
		Response: "Most headaches respond to rest, fluids and over-the-counter pain relief used as directed. " +
			"Keep a note of triggers like stress, skipped meals or poor sleep. See a doctor promptly for a " +
			"sudden severe headache, a headache after a head injury, or one with fever, stiff neck or vision changes.",
	},
	{
		TopicKey: "fever",
		Keywords: []string{"fever", "high temperature", "chills", "feverish"},
		Response: "For a fever, rest, drink plenty of fluids and consider paracetamol or ibuprofen as directed. " +
			"Seek medical care if a fever goes above 39.4°C (103°F), lasts more than three days, " +
			"or comes with a rash, stiff neck, confusion or trouble breathing.",
	},
	{
		TopicKey: "cold_flu",
		Keywords: []string{"cold", "flu", "cough", "sore throat", "runny nose", "congestion", "sneezing"},
		Response: "Colds and flu usually pass within a week or two. Rest, fluids, and warm drinks with honey can ease " +
			"symptoms; decongestants and throat lozenges help too. See a doctor if symptoms last beyond ten days, " +
			"you have trouble breathing, or a high fever does not settle.",
	},
	{
		TopicKey: "sleep",
		Keywords: []string{"sleep", "insomnia", "can't sleep", "tired", "fatigue", "exhausted"},
		Response: "Adults generally need 7 to 9 hours of sleep. A regular schedule, a dark cool room, and avoiding " +
			"screens and caffeine late in the day all help. Persistent insomnia or daytime exhaustion despite " +
			"enough time in bed is worth discussing with a doctor.",
	},
	{
		TopicKey: "nutrition",
		Keywords: []string{"nutrition", "diet", "healthy eating", "vitamins", "what should i eat"},
		Response: "A balanced plate is half vegetables and fruit, a quarter whole grains, and a quarter protein, " +
			"with water as the main drink. Limit ultra-processed food, added sugar and excess salt. " +
			"A registered dietitian can tailor advice to your health conditions.",
	},
	{
		TopicKey: "exercise",
		Keywords: []string{"exercise", "workout", "physical activity", "fitness", "how much should i move"},
		Response: "Aim for at least 150 minutes of moderate activity a week, such as brisk walking, plus " +
			"muscle-strengthening twice a week. Start small and build up gradually. Check with a doctor first " +
			"if you have heart disease, joint problems or have been inactive for a long time.",
	},
	{
		TopicKey: "stress",
		Keywords: []string{"stress", "stressed", "anxiety", "anxious", "overwhelmed", "worried"},
		Response: "Short bouts of stress are normal, but ongoing stress wears you down. Regular movement, " +
			"slow breathing exercises, time outdoors and talking to someone you trust all help. " +
			"If stress or anxiety interferes with daily life, a mental-health professional can make a real difference.",
	},
	{
		TopicKey: "stomach",
		Keywords: []string{"stomach", "nausea", "vomiting", "diarrhea", "indigestion", "abdominal pain"},
		Response: "For an upset stomach, try small sips of fluid, bland food and rest. Most bouts settle within " +
			"a day or two. Seek care for severe or persistent abdominal pain, blood in vomit or stool, " +
			"or signs of dehydration such as dizziness and very dark urine.",
	},
	{
		TopicKey: "blood_pressure",
		Keywords: []string{"blood pressure", "hypertension"},
		Response: "A healthy resting blood pressure is around 120/80 mmHg. Less salt, regular activity, a healthy " +
			"weight and limiting alcohol all lower it. High readings on several days deserve a doctor's review; " +
			"never stop prescribed blood-pressure medicine on your own.",
	},
	{
		TopicKey: "allergies",
		Keywords: []string{"allergy", "allergies", "allergic", "hay fever", "hives", "itchy eyes"},
		Response: "Mild allergies often respond to avoiding the trigger and non-drowsy antihistamines. " +
			"Rinsing your nose with saline helps hay fever. Swelling of the lips or tongue, or any trouble " +
			"breathing after an exposure, is an emergency - use an epinephrine auto-injector if prescribed and call for help.",
	},
	{
		TopicKey: "back_pain",
		Keywords: []string{"back pain", "backache", "lower back", "back hurts"},
		Response: "Most back pain improves within a few weeks with gentle movement, heat and over-the-counter pain " +
			"relief; bed rest usually slows recovery. See a doctor if pain follows an injury, shoots down a leg, " +
			"or comes with numbness, weakness or bladder changes.",
	},
	{
		TopicKey: "mental_health",
		Keywords: []string{"depression", "depressed", "mood", "mental health", "feeling down"},
		Response: "Low mood that lasts more than two weeks, or that drains interest from things you used to enjoy, " +
			"is worth taking seriously. Talking therapies and medication both work well. Reaching out to a " +
			"professional or a trusted person is a strong first step, not a weakness.",
	},
}
