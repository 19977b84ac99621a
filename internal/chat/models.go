package chat

import (
	"fmt"

	"github.com/fdg312/culinary-hub/internal/ai"
	"github.com/fdg312/culinary-hub/internal/nutrition"
)

const culinaryGreeting = "Hi! I am your AI Culinary Assistant. I can help you with nutrition advice, recipe modifications, or meal planning. How can I assist you today?"

// Greeting is the assistant's opening line for a new conversation.
func Greeting(persona ai.Persona, p nutrition.Profile) string {
	if persona == ai.PersonaCoach {
		return fmt.Sprintf("Hello %s! I'm your Fitness & Diet Consultant. Based on your goal of %s, how can I help you optimize your nutrition or meal planning today?", p.Name, p.HealthGoal)
	}
	return culinaryGreeting
}

// Title is the display name of a persona.
func Title(persona ai.Persona) string {
	if persona == ai.PersonaCoach {
		return "Fitness Consultant"
	}
	return "Culinary Assistant"
}
