package main

// Achievement definitions
type AchievementDef struct {
	ID          string
	Name        string
	Description string
}

var Achievements = []AchievementDef{
	{"first_kill", "First Blood", "Destroy your first enemy fighter"},
	{"ace", "Ace Pilot", "Destroy 10 fighters in a single run"},
	{"sharpshooter", "Sharpshooter", "Destroy 100 fighters in total"},
	{"lifeline", "Lifeline", "Collect 5 life spheres in a single run"},
	{"hoarder", "Hoarder", "Collect 50 life spheres in total"},
	{"survivor", "Survivor", "Stay alive for 5 minutes in a single run"},
	{"high_score", "Top Gun", "Finish a run with a score of 25 or more"},
	{"veteran", "Veteran", "Complete 50 runs"},
	{"marathon", "Marathon", "Accumulate 1 hour of flight time"},
}

// CheckAchievements checks which achievements a finished run unlocks.
// Call after the run is recorded so lifetime totals include it.
// Returns the newly unlocked definitions.
func CheckAchievements(db *DB, pilotID int64, runScore, runKills, runSpheres int, runDuration float64) []AchievementDef {
	if db == nil || pilotID == 0 {
		return nil
	}

	totals, err := db.GetPilotTotals(pilotID)
	if err != nil {
		return nil
	}
	unlocked, err := db.GetUnlockedAchievements(pilotID)
	if err != nil {
		return nil
	}

	earned := func(id string) bool {
		switch id {
		case "first_kill":
			return runKills > 0 || totals.Kills > 0
		case "ace":
			return runKills >= 10
		case "sharpshooter":
			return totals.Kills >= 100
		case "lifeline":
			return runSpheres >= 5
		case "hoarder":
			return totals.Spheres >= 50
		case "survivor":
			return runDuration >= 300
		case "high_score":
			return runScore >= 25
		case "veteran":
			return totals.Runs >= 50
		case "marathon":
			return totals.Playtime >= 3600
		}
		return false
	}

	var newly []AchievementDef
	for _, def := range Achievements {
		if unlocked[def.ID] || !earned(def.ID) {
			continue
		}
		if err := db.UnlockAchievement(pilotID, def.ID); err != nil {
			continue
		}
		newly = append(newly, def)
	}
	return newly
}
