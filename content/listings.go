package content

// Service is an entry in the services listing served at /api/services.
type Service struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TeamMember is an entry in the team listing served at /api/team.
type TeamMember struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Image    string `json:"image"`
}

var services = []Service{
	{ID: 1, Name: "AI Integration", Description: "Integrate OpenAI, Anthropic, Google AI, and Azure AI services"},
	{ID: 2, Name: "Workflow Automation", Description: "Automate processes using N8N, Zapier, and custom solutions"},
	{ID: 3, Name: "Cloud Solutions", Description: "Deploy across AWS, GCP, OCI, and Azure platforms"},
	{ID: 4, Name: "Monitoring & Analytics", Description: "Comprehensive monitoring with Prometheus and Grafana"},
	{ID: 5, Name: "Security & Compliance", Description: "Enterprise-grade security with GDPR, CCPA, HIPAA compliance"},
	{ID: 6, Name: "API Development", Description: "Build robust APIs with comprehensive documentation"},
}

var team = []TeamMember{
	{ID: 1, Name: "Alex Johnson", Position: "Chief Executive Officer", Image: "assets/img/team/team-1.jpg"},
	{ID: 2, Name: "Sarah Chen", Position: "Chief Technology Officer", Image: "assets/img/team/team-2.jpg"},
	{ID: 3, Name: "Michael Rodriguez", Position: "AI Solutions Architect", Image: "assets/img/team/team-3.jpg"},
	{ID: 4, Name: "Emily Davis", Position: "Cloud Infrastructure Lead", Image: "assets/img/team/team-4.jpg"},
}

// Services returns a copy of the services listing.
func Services() []Service {
	return append([]Service(nil), services...)
}

// Team returns a copy of the team listing.
func Team() []TeamMember {
	return append([]TeamMember(nil), team...)
}
