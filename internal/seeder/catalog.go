package seeder

// StarterQuestion is one curated entry for seeding a fresh database
type StarterQuestion struct {
	QuestionText string
	AnswerText   string
	SourceURL    string
}

// StarterQuestions is the curated set of answered questions a new deployment
// starts with. All are public and already answered.
var StarterQuestions = []StarterQuestion{
	{
		QuestionText: "Can I live in an RV on my own property in Lexington?",
		AnswerText:   "You can temporarily park and live in an RV on private property if it is not used as a permanent residence, but zoning laws prohibit long-term habitation.",
		SourceURL:    "https://lexingtonky.gov/planning",
	},
	{
		QuestionText: "Is it legal to have chickens in a residential backyard in Louisville?",
		AnswerText:   "Yes, but you must limit flock size and maintain a clean enclosure. Roosters may be prohibited in some zones.",
		SourceURL:    "https://louisvilleky.gov/animalservices",
	},
	{
		QuestionText: "Can I collect rainwater in Kentucky?",
		AnswerText:   "Yes. Kentucky does not restrict rainwater collection for personal use.",
		SourceURL:    "https://ky.gov/environment",
	},
	{
		QuestionText: "Do I need a permit to build a fence in Lexington?",
		AnswerText:   "Fences over 6 feet require a building permit and must meet setback requirements.",
		SourceURL:    "https://lexingtonky.gov/buildingpermits",
	},
	{
		QuestionText: "Are pocket knives legal to carry in Kentucky?",
		AnswerText:   "Yes, there are no length restrictions, but they cannot be carried in schools or government buildings.",
		SourceURL:    "https://kentuckystatepolice.org/laws",
	},
	{
		QuestionText: "Can I run a business out of my home in Kentucky?",
		AnswerText:   "Home businesses are allowed if they do not create traffic, noise, or signage. Check local zoning ordinances for specific limits.",
		SourceURL:    "https://lexingtonky.gov/zoning",
	},
	{
		QuestionText: "Is it legal to sleep in your car overnight in Kentucky?",
		AnswerText:   "Generally yes, but some cities have ordinances against sleeping in vehicles on public streets.",
		SourceURL:    "https://kentucky.gov",
	},
	{
		QuestionText: "Are fireworks legal in Kentucky?",
		AnswerText:   "Consumer fireworks are legal but restricted in certain cities. Always verify local ordinances.",
		SourceURL:    "https://kyfiremarshal.ky.gov",
	},
	{
		QuestionText: "Can I keep bees in urban areas of Kentucky?",
		AnswerText:   "Beekeeping is allowed, but hives must be placed a certain distance from property lines and streets.",
		SourceURL:    "https://kyagr.com/statevet/bee",
	},
	{
		QuestionText: "Do I need a fishing license to fish on my own land in Kentucky?",
		AnswerText:   "No license is required if fishing on private land that you own, with no access to public waterways.",
		SourceURL:    "https://fw.ky.gov",
	},
	{
		QuestionText: "Can I legally own a pet monkey in New York City?",
		AnswerText:   "No, it is illegal to own a monkey as a pet in New York City. According to NYC Health Code Article 161.01, it is prohibited to possess, sell, or import non-human primates within the five boroughs. This includes all species of monkeys, apes, and lemurs. Violations can result in fines and the animal being confiscated.",
		SourceURL:    "https://www1.nyc.gov/site/doh/about/press/pr2021/health-department-issues-reminder-about-illegal-pets.page",
	},
	{
		QuestionText: "Is it illegal to carry an ice cream cone in your back pocket in Alabama?",
		AnswerText:   "This is actually a myth! While there are various claims about this law online, there is no evidence of any Alabama state law or municipal ordinance that specifically prohibits carrying ice cream cones in back pockets. This appears to be an urban legend that has persisted on the internet.",
		SourceURL:    "https://www.alabama.gov/portal/secondary.jsp?page=Laws",
	},
}
