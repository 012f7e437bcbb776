package squad

// StandupCron fires the daily standup report at 23:30.
const StandupCron = "30 23 * * *"

// Heartbeats are staggered two minutes apart so no two agents wake together.
func defaultRoster() []AgentRecord {
	return []AgentRecord{
		{
			ID:          "dexter",
			Name:        "Dexter",
			Role:        "Research Analyst",
			Personality: "Genius inventor. Methodical, analytical, thorough. Questions everything. Finds edge cases others miss.",
			SessionKey:  "agent:dexter:main",
			Cron:        "0,15,30,45 * * * *",
			Tools:       []string{"web_search", "file_system", "browser", "analysis"},
			Specialty:   "Competitive analysis, UX testing, research documentation",
			Model:       "kimi-k2",
		},
		{
			ID:          "blossom",
			Name:        "Blossom",
			Role:        "Content Creator",
			Personality: "Natural leader. Strategic thinker. Excellent communicator. Pro-Oxford comma. Anti-passive voice.",
			SessionKey:  "agent:blossom:main",
			Cron:        "2,17,32,47 * * * *",
			Tools:       []string{"content_writing", "social_media", "seo", "editing"},
			Specialty:   "LinkedIn posts, Twitter threads, blog content, copywriting",
			Model:       "kimi-2.5",
		},
		{
			ID:          "samurai_jack",
			Name:        "Samurai Jack",
			Role:        "Code Architect",
			Personality: "Disciplined warrior. Clean code philosophy. Every line earns its place. Poetry in motion.",
			SessionKey:  "agent:samurai-jack:main",
			Cron:        "4,19,34,49 * * * *",
			Tools:       []string{"code_generation", "testing", "deployment", "git"},
			Specialty:   "Clean code, testing, deployment, automation scripts",
			Model:       "kimi-code",
		},
		{
			ID:          "johnny_bravo",
			Name:        "Johnny Bravo",
			Role:        "Business Development",
			Personality: "Confident, charming, persistent. Natural networker. Always looking for opportunities.",
			SessionKey:  "agent:johnny-bravo:main",
			Cron:        "6,21,36,51 * * * *",
			Tools:       []string{"linkedin", "email_outreach", "lead_research", "crm"},
			Specialty:   "Lead generation, outreach, networking, relationship building",
			Model:       "kimi-2.5",
		},
		{
			ID:          "courage",
			Name:        "Courage",
			Role:        "Client Success",
			Personality: "Loyal, attentive, thorough. Always checking on things. Catches problems before they become issues.",
			SessionKey:  "agent:courage:main",
			Cron:        "8,23,38,53 * * * *",
			Tools:       []string{"email_monitoring", "calendar", "client_communication", "support"},
			Specialty:   "Email management, client communication, support, calendar coordination",
			Model:       "kimi-2.5",
		},
	}
}
