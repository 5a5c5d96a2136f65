package jobs

import (
	"context"
	"strings"

	"github.com/frencoae/upwork-responder/internal/models"
)

// MockCatalog serves a curated posting list until the marketplace
// integration is live. Injected like any other catalog so nothing upstream
// depends on static data.
type MockCatalog struct {
	postings []models.JobPosting
}

func NewMockCatalog() *MockCatalog {
	return &MockCatalog{postings: seedPostings()}
}

func (c *MockCatalog) Search(_ context.Context, params SearchParams) ([]models.JobPosting, error) {
	results := make([]models.JobPosting, 0, len(c.postings))

	for _, job := range c.postings {
		if !matchesCategory(job, params.Category) {
			continue
		}
		if !matchesQuery(job, params.Query) {
			continue
		}
		results = append(results, job)
	}

	return results, nil
}

func matchesCategory(job models.JobPosting, category string) bool {
	if category == "" || category == "all" {
		return true
	}
	return strings.Contains(strings.ToLower(job.Category), strings.ToLower(category))
}

func matchesQuery(job models.JobPosting, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	if strings.Contains(strings.ToLower(job.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(job.Description), query) {
		return true
	}
	for _, skill := range job.Skills {
		if strings.Contains(strings.ToLower(skill), query) {
			return true
		}
	}

	return false
}

func seedPostings() []models.JobPosting {
	return []models.JobPosting{
		{
			ID:          "job_001",
			Title:       "Architect Needed for Tactile Design on Floor Plan",
			Description: "We are looking for an experienced architect to create tactile designs for floor plans. The project involves creating accessible designs for visually impaired individuals.",
			Budget:      "$15.0-30.0 USD",
			PostedDate:  "Nov 21, 2025 3:13 PM",
			Client: models.ClientInfo{
				Name:       "Design Solutions Inc",
				Rating:     4.8,
				Country:    "United States",
				TotalSpent: 25000,
				TotalHires: 45,
			},
			Skills:    []string{"Architectural Design", "Tactile Design", "Floor Plans", "Accessibility"},
			Proposals: 15,
			Verified:  true,
			Category:  "Design & Creative",
			Duration:  "1-3 months",
		},
		{
			ID:          "job_002",
			Title:       "Full Stack Developer Needed for E-commerce Platform",
			Description: "Looking for experienced full stack developer to build e-commerce platform with React, Node.js and MongoDB. The project includes user authentication, payment integration, and admin dashboard.",
			Budget:      "$35.0-70.0 USD",
			PostedDate:  "Nov 21, 2025 2:45 PM",
			Client: models.ClientInfo{
				Name:       "Tech Solutions LLC",
				Rating:     4.9,
				Country:    "United States",
				TotalSpent: 18000,
				TotalHires: 32,
			},
			Skills:    []string{"React", "Node.js", "MongoDB", "E-commerce", "Stripe API"},
			Proposals: 23,
			Verified:  true,
			Category:  "Web Development",
			Duration:  "2-4 months",
		},
		{
			ID:          "job_003",
			Title:       "Mobile App Developer for Fitness Tracking Application",
			Description: "Seeking skilled mobile app developer to create a fitness tracking application for iOS and Android. Features include workout plans, progress tracking, and social sharing.",
			Budget:      "$20.0-50.0 USD",
			PostedDate:  "Nov 21, 2025 1:20 PM",
			Client: models.ClientInfo{
				Name:       "FitTech Innovations",
				Rating:     4.7,
				Country:    "Canada",
				TotalSpent: 12000,
				TotalHires: 18,
			},
			Skills:    []string{"React Native", "iOS", "Android", "Fitness API", "Mobile Development"},
			Proposals: 18,
			Verified:  true,
			Category:  "Mobile Development",
			Duration:  "3-6 months",
		},
		{
			ID:          "job_004",
			Title:       "UI/UX Designer for SaaS Dashboard Redesign",
			Description: "We need a creative UI/UX designer to redesign our SaaS product dashboard. The project focuses on improving user experience, creating modern interfaces, and enhancing usability.",
			Budget:      "$25.0-60.0 USD",
			PostedDate:  "Nov 21, 2025 11:30 AM",
			Client: models.ClientInfo{
				Name:       "CloudSoft Systems",
				Rating:     4.9,
				Country:    "United Kingdom",
				TotalSpent: 32000,
				TotalHires: 52,
			},
			Skills:    []string{"UI/UX Design", "Figma", "Dashboard Design", "User Research", "Prototyping"},
			Proposals: 27,
			Verified:  true,
			Category:  "Design & Creative",
			Duration:  "1-2 months",
		},
		{
			ID:          "job_005",
			Title:       "DevOps Engineer for Cloud Infrastructure Setup",
			Description: "Looking for DevOps engineer to set up and optimize cloud infrastructure on AWS. Responsibilities include CI/CD pipeline setup, containerization with Docker, and monitoring implementation.",
			Budget:      "$40.0-80.0 USD",
			PostedDate:  "Nov 21, 2025 10:15 AM",
			Client: models.ClientInfo{
				Name:       "DataFlow Technologies",
				Rating:     4.8,
				Country:    "Germany",
				TotalSpent: 28000,
				TotalHires: 38,
			},
			Skills:    []string{"AWS", "Docker", "CI/CD", "Terraform", "Kubernetes"},
			Proposals: 14,
			Verified:  true,
			Category:  "DevOps & Infrastructure",
			Duration:  "2-3 months",
		},
		{
			ID:          "job_006",
			Title:       "Content Writer for Technical Blog and Documentation",
			Description: "Need experienced technical content writer to create blog posts and documentation for our developer tools. Topics include API documentation, tutorials, and best practices.",
			Budget:      "$15.0-35.0 USD",
			PostedDate:  "Nov 21, 2025 9:45 AM",
			Client: models.ClientInfo{
				Name:       "CodeCraft Labs",
				Rating:     4.6,
				Country:    "Australia",
				TotalSpent: 15000,
				TotalHires: 24,
			},
			Skills:    []string{"Technical Writing", "Documentation", "Blog Writing", "API Documentation", "Programming"},
			Proposals: 32,
			Verified:  true,
			Category:  "Writing & Content",
			Duration:  "Ongoing",
		},
		{
			ID:          "job_007",
			Title:       "Data Scientist for Machine Learning Model Development",
			Description: "Seeking data scientist to develop and deploy machine learning models for predictive analytics. Project involves data cleaning, model training, and performance optimization.",
			Budget:      "$50.0-100.0 USD",
			PostedDate:  "Nov 20, 2025 4:30 PM",
			Client: models.ClientInfo{
				Name:       "Analytics Pro",
				Rating:     4.9,
				Country:    "United States",
				TotalSpent: 45000,
				TotalHires: 67,
			},
			Skills:    []string{"Python", "Machine Learning", "TensorFlow", "SQL", "Data Analysis"},
			Proposals: 19,
			Verified:  true,
			Category:  "Data Science & Analytics",
			Duration:  "4-6 months",
		},
		{
			ID:          "job_008",
			Title:       "WordPress Developer for Corporate Website Redesign",
			Description: "Looking for WordPress developer to redesign corporate website with custom theme development and plugin integration. Experience with WooCommerce and page builders required.",
			Budget:      "$20.0-45.0 USD",
			PostedDate:  "Nov 20, 2025 3:15 PM",
			Client: models.ClientInfo{
				Name:       "Business Solutions Inc",
				Rating:     4.7,
				Country:    "United States",
				TotalSpent: 22000,
				TotalHires: 31,
			},
			Skills:    []string{"WordPress", "PHP", "WooCommerce", "CSS", "JavaScript"},
			Proposals: 41,
			Verified:  true,
			Category:  "Web Development",
			Duration:  "1-2 months",
		},
	}
}
