package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

const (
	fallbackExplanation = "Unable to generate explanation at this time. Please check your API key configuration and try again later."
	fallbackChatReply   = "I apologize, but I'm having trouble processing your request right now. Please check the API configuration and try again."
	fallbackInsights    = "Unable to generate insights at this time."
)

// Assistant answers project questions through a TextGenerator. Generator
// failures are logged and replaced by a fixed fallback text.
type Assistant struct {
	svc *Service
	gen TextGenerator
}

func NewAssistant(svc *Service, gen TextGenerator) *Assistant {
	return &Assistant{svc: svc, gen: gen}
}

func (a *Assistant) generate(ctx context.Context, prompt, fallback string) string {
	if a.gen == nil {
		log.Printf("assistant: no text generator configured")
		return fallback
	}
	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		log.Printf("assistant: %v", err)
		return fallback
	}
	return text
}

// ExplainTask explains a task given its title and description.
func (a *Assistant) ExplainTask(ctx context.Context, title, description string) string {
	prompt := fmt.Sprintf(`As an expert project manager for a drone competition project (AgriSync-X), explain the following task in detail:

Task: %s
Description: %s

Please provide:
1. Context and importance of this task in the drone development lifecycle
2. Practical steps to complete it effectively
3. Potential challenges and solutions specific to drone/robotics engineering
4. Success criteria and deliverables
5. Dependencies and prerequisites

Keep the explanation clear, actionable, and focused on drone/robotics engineering context.
Format the response in a structured, easy-to-read manner.`, title, description)
	return a.generate(ctx, prompt, fallbackExplanation)
}

// ChatReply answers message. With post set, the answer is also appended to
// the team chat as an assistant message.
func (a *Assistant) ChatReply(ctx context.Context, message, background string, post bool) (string, error) {
	if message == "" {
		return "", ErrEmptyMessage
	}
	prompt := "You are an AI assistant for the AgriSync-X drone competition project team.\n" +
		"You are an expert in drone/UAV development and engineering, precision agriculture applications,\n" +
		"project management for robotics teams, competition strategy and technical problem-solving.\n\n"
	if background != "" {
		prompt += "Context: " + background + "\n\n"
	}
	prompt += "User message: " + message + "\n\n" +
		"Provide helpful, technical guidance that is specific to drone/robotics development, actionable and\n" +
		"relevant to competition preparation. Be concise but comprehensive.\n" +
		"If the question is not related to the project, politely redirect to project-related topics."

	reply := a.generate(ctx, prompt, fallbackChatReply)
	if post {
		if _, err := a.svc.addAssistantMessage(ctx, reply); err != nil {
			return reply, err
		}
	}
	return reply, nil
}

// ProjectInsights asks for a health assessment of the current task tree.
func (a *Assistant) ProjectInsights(ctx context.Context) string {
	state := a.svc.dir.Snapshot()
	tasks, err := json.MarshalIndent(state.Tasks, "", "  ")
	if err != nil {
		log.Printf("assistant: encode tasks: %v", err)
		return fallbackInsights
	}
	members, err := json.MarshalIndent(state.Users, "", "  ")
	if err != nil {
		log.Printf("assistant: encode members: %v", err)
		return fallbackInsights
	}
	prompt := fmt.Sprintf(`Analyze the following AgriSync-X drone project data and provide insights:

Tasks: %s
Team Members: %s

Please provide:
1. Project health assessment
2. Risk analysis and mitigation strategies
3. Optimization recommendations
4. Timeline predictions
5. Resource allocation suggestions

Focus on actionable insights for a drone competition team.`, tasks, members)
	return a.generate(ctx, prompt, fallbackInsights)
}

// ExplainTaskByID resolves a cached task or subtask and explains it.
func (a *Assistant) ExplainTaskByID(ctx context.Context, id string) (string, bool) {
	ref, ok := a.svc.dir.Snapshot().FindTask(id)
	if !ok {
		return "", false
	}
	return a.ExplainTask(ctx, ref.Task.Title, ref.Task.Description), true
}
