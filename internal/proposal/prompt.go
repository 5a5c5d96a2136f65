package proposal

import (
	"fmt"
	"strings"

	"github.com/frencoae/upwork-responder/internal/models"
)

const defaultInstructions = "Write a professional proposal that addresses client needs and shows relevant experience."

// BuildPrompt assembles the generation prompt from the job, the freelancer
// and the resolved prompt settings. It is pure: same inputs produce a
// byte-identical prompt, no I/O, no randomness.
//
// Only proposalTemplates[0] feeds the instructions block; further templates
// are stored but not consumed here.
func BuildPrompt(job models.JobPosting, userName string, settings models.PromptSettings) string {
	skills := "Not specified"
	if len(job.Skills) > 0 {
		skills = strings.Join(job.Skills, ", ")
	}

	clientName := job.Client.Name
	if clientName == "" {
		clientName = "Unknown"
	}

	clientRating := "N/A"
	if job.Client.Rating > 0 {
		clientRating = fmt.Sprintf("%.1f", job.Client.Rating)
	}

	instructions := defaultInstructions
	if len(settings.ProposalTemplates) > 0 && settings.ProposalTemplates[0].Content != "" {
		instructions = settings.ProposalTemplates[0].Content
	}

	var b strings.Builder

	b.WriteString("PROFESSIONAL UPWORK PROPOSAL GENERATION\n\n")

	b.WriteString("CLIENT JOB DETAILS:\n")
	fmt.Fprintf(&b, "Job Title: %s\n", job.Title)
	fmt.Fprintf(&b, "Description: %s\n", job.Description)
	fmt.Fprintf(&b, "Budget: %s\n", job.Budget)
	fmt.Fprintf(&b, "Required Skills: %s\n", skills)
	fmt.Fprintf(&b, "Client: %s (Rating: %s)\n\n", clientName, clientRating)

	b.WriteString("FREELANCER PROFILE:\n")
	fmt.Fprintf(&b, "Name: %s\n", userName)
	fmt.Fprintf(&b, "Specialty: %s\n", settings.BasicInfo.Specialty)
	fmt.Fprintf(&b, "Services: %s\n", settings.BasicInfo.Provisions)
	fmt.Fprintf(&b, "Hourly Rate: %s\n\n", settings.BasicInfo.HourlyRate)

	b.WriteString("GENERATION INSTRUCTIONS:\n")
	b.WriteString(instructions)
	b.WriteString("\n\n")

	b.WriteString("SPECIFIC REQUIREMENTS:\n")
	b.WriteString("1. Address the client's main pain points from the job description\n")
	b.WriteString("2. Show relevant experience with similar projects\n")
	b.WriteString("3. Keep professional but friendly tone\n")
	b.WriteString("4. Include clear call-to-action for next steps\n")
	b.WriteString("5. Maximum 250 words\n")
	fmt.Fprintf(&b, "6. Use the freelancer's name: %s\n", userName)
	b.WriteString("7. Focus on providing value and solutions\n\n")

	b.WriteString("Generate a proposal that will get high response rates and show genuine interest in the project.\n")

	return b.String()
}
