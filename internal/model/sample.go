package model

// Built-in starting documents offered when a session is created.
const (
	StarterBlank  = "blank"
	StarterSample = "sample"
)

// NewFromStarter returns a fresh document for the named starter, or false
// if the name is unknown.
func NewFromStarter(name string) (*Resume, bool) {
	switch name {
	case "", StarterBlank:
		return NewResume(), true
	case StarterSample:
		return SampleResume(), true
	}
	return nil, false
}

// SampleResume is the demo document shown to first-time users.
func SampleResume() *Resume {
	return &Resume{
		PersonalInfo: PersonalInfo{
			Name:      "Alex Morgan",
			Title:     "Senior Product Designer",
			Email:     "alex.morgan@design.com",
			Phone:     "+1 (555) 123-4567",
			Location:  "San Francisco, CA",
			LinkedIn:  "linkedin.com/in/alexmorgan",
			GitHub:    "dribbble.com/alexmorgan",
			Portfolio: "alexmorgan.design",
		},
		Summary: "Creative and user-centric Product Designer with 6+ years of experience in designing intuitive digital experiences for web and mobile platforms. Proficient in the end-to-end design process, from user research and wireframing to high-fidelity prototyping and design systems.",
		Experience: []Experience{
			{
				ID:        "exp1",
				Title:     "Senior Product Designer",
				Company:   "TechFlow Solutions",
				Location:  "San Francisco, CA",
				StartDate: "March 2021",
				EndDate:   "Present",
				IsCurrent: true,
				Responsibilities: []string{
					"Led the redesign of the core SaaS dashboard, resulting in a 25% increase in user engagement and a 15% reduction in churn.",
					"Established and maintained a comprehensive Design System in Figma, improving design-to-development handoff efficiency by 40%.",
					"Conducted user research, usability testing, and stakeholder interviews to inform product strategy and roadmap.",
				},
			},
			{
				ID:        "exp2",
				Title:     "UX/UI Designer",
				Company:   "CreativePulse Agency",
				Location:  "Austin, TX",
				StartDate: "June 2018",
				EndDate:   "February 2021",
				Responsibilities: []string{
					"Designed responsive websites and mobile apps for diverse clients in fintech, healthcare, and e-commerce sectors.",
					"Created interactive prototypes using Protopie and Principle to validate design concepts with users.",
				},
			},
		},
		Education: []Education{
			{
				ID:         "edu1",
				Degree:     "Bachelor of Fine Arts in Interaction Design",
				University: "California College of the Arts",
				Location:   "San Francisco, CA",
				StartDate:  "September 2014",
				EndDate:    "May 2018",
			},
		},
		Projects: []Project{
			{
				ID:          "proj1",
				Name:        "FinTrack Mobile App",
				TechStack:   []string{"Figma", "iOS", "User Research"},
				Link:        "alexmorgan.design/fintrack",
				Description: "A personal finance management app designed to help millennials track expenses and set savings goals.",
			},
			{
				ID:          "proj2",
				Name:        "EcoShop E-commerce",
				TechStack:   []string{"Adobe XD", "Webflow", "Sustainability"},
				Link:        "alexmorgan.design/ecoshop",
				Description: "An eco-friendly e-commerce platform focused on sustainable products.",
			},
		},
		Skills: []string{"Figma", "Sketch", "Adobe Creative Suite", "Prototyping", "User Research", "Wireframing", "Design Systems", "HTML/CSS", "Accessibility (WCAG)", "Agile"},
		Certifications: []Certification{
			{ID: "cert1", Name: "Google UX Design Professional Certificate", Provider: "Coursera", Date: "2020"},
		},
		CustomSections: []CustomSection{},
		SectionOrder:   []string{"summary", "experience", "education", "skills", "projects", "certifications"},
	}
}
