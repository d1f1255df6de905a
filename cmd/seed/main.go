package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"octofit.app/tracker/internal/bootstrap"
	"octofit.app/tracker/internal/entity"
	leaderboardRepo "octofit.app/tracker/internal/modules/leaderboard/repository"
	leaderboardService "octofit.app/tracker/internal/modules/leaderboard/service"
	"octofit.app/tracker/internal/modules/scoring"
	"octofit.app/tracker/pkg/database"
)

type hero struct {
	firstName string
	lastName  string
	username  string
	email     string
	team      string
	level     string
}

var heroes = []hero{
	{"Tony", "Stark", "ironman", "tony.stark@marvel.com", "Team Marvel", entity.FitnessAdvanced},
	{"Steve", "Rogers", "captainamerica", "steve.rogers@marvel.com", "Team Marvel", entity.FitnessAdvanced},
	{"Thor", "Odinson", "thor", "thor.odinson@marvel.com", "Team Marvel", entity.FitnessAdvanced},
	{"Natasha", "Romanoff", "blackwidow", "natasha.romanoff@marvel.com", "Team Marvel", entity.FitnessIntermediate},
	{"Bruce", "Banner", "hulk", "bruce.banner@marvel.com", "Team Marvel", entity.FitnessIntermediate},
	{"Peter", "Parker", "spiderman", "peter.parker@marvel.com", "Team Marvel", entity.FitnessBeginner},
	{"Bruce", "Wayne", "batman", "bruce.wayne@dc.com", "Team DC", entity.FitnessAdvanced},
	{"Clark", "Kent", "superman", "clark.kent@dc.com", "Team DC", entity.FitnessAdvanced},
	{"Diana", "Prince", "wonderwoman", "diana.prince@dc.com", "Team DC", entity.FitnessAdvanced},
	{"Barry", "Allen", "theflash", "barry.allen@dc.com", "Team DC", entity.FitnessIntermediate},
	{"Arthur", "Curry", "aquaman", "arthur.curry@dc.com", "Team DC", entity.FitnessIntermediate},
	{"Hal", "Jordan", "greenlantern", "hal.jordan@dc.com", "Team DC", entity.FitnessBeginner},
}

var activityTypes = []string{
	entity.ActivityRunning,
	entity.ActivityCycling,
	entity.ActivitySwimming,
	entity.ActivityWeightlifting,
	entity.ActivityYoga,
	entity.ActivityWalking,
}

func main() {
	_ = godotenv.Load()

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Println("Clearing existing data...")
	if err := clear(db); err != nil {
		log.Fatalf("failed to clear existing data: %v", err)
	}

	users, err := seedUsers(db)
	if err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}
	log.Printf("Created %d users", len(users))

	teams, err := seedTeams(db, users)
	if err != nil {
		log.Fatalf("failed to seed teams: %v", err)
	}
	log.Printf("Created %d teams", len(teams))

	total, err := seedActivities(db, users)
	if err != nil {
		log.Fatalf("failed to seed activities: %v", err)
	}
	log.Printf("Created %d activities", total)

	repo := leaderboardRepo.NewLeaderboardRepository(db)
	svc := leaderboardService.NewLeaderboardService(repo, nil)
	if err := svc.RefreshAllPeriods(context.Background()); err != nil {
		log.Fatalf("failed to refresh rankings: %v", err)
	}
	log.Println("Leaderboard rankings refreshed")

	count, err := seedWorkouts(db)
	if err != nil {
		log.Fatalf("failed to seed workouts: %v", err)
	}
	log.Printf("Created %d workouts", count)

	log.Println("=== Database population complete ===")
}

func clear(db *gorm.DB) error {
	for _, stmt := range []string{
		"DELETE FROM leaderboard_entries",
		"DELETE FROM activities",
		"DELETE FROM team_members",
		"DELETE FROM teams",
		"DELETE FROM workouts",
		"DELETE FROM users",
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(db *gorm.DB) ([]*entity.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("hero1234"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(heroes))
	for _, h := range heroes {
		user := &entity.User{
			Username:     h.username,
			Email:        h.email,
			PasswordHash: string(hashed),
			FirstName:    h.firstName,
			LastName:     h.lastName,
			Bio:          fmt.Sprintf("Hero from %s", h.team),
			FitnessLevel: h.level,
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func seedTeams(db *gorm.DB, users []*entity.User) ([]*entity.Team, error) {
	descriptions := map[string]string{
		"Team Marvel": "Earth's Mightiest Heroes",
		"Team DC":     "Justice League United",
	}

	teams := make([]*entity.Team, 0, 2)
	for _, name := range []string{"Team Marvel", "Team DC"} {
		var members []*entity.User
		for i, h := range heroes {
			if h.team == name {
				members = append(members, users[i])
			}
		}

		team := &entity.Team{
			Name:        name,
			Description: descriptions[name],
			CreatedByID: members[0].ID,
		}
		if err := db.Create(team).Error; err != nil {
			return nil, err
		}
		if err := db.Model(team).Association("Members").Append(members); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func seedActivities(db *gorm.DB, users []*entity.User) (int, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	total := 0

	for _, user := range users {
		n := 5 + rng.Intn(11)
		points := 0
		for i := 0; i < n; i++ {
			activityType := activityTypes[rng.Intn(len(activityTypes))]
			duration := 20 + rng.Intn(101)

			var distance *float64
			switch activityType {
			case entity.ActivityRunning, entity.ActivityCycling, entity.ActivitySwimming:
				d := 1.0 + rng.Float64()*19.0
				distance = &d
			}

			activity := &entity.Activity{
				UserID:       user.ID,
				ActivityType: activityType,
				Duration:     duration,
				Distance:     distance,
				Calories:     100 + rng.Intn(701),
				PointsEarned: scoring.Points(duration, activityType),
				Notes:        fmt.Sprintf("%s session completed", activityType),
				Date:         time.Now().AddDate(0, 0, -rng.Intn(31)),
			}
			if err := db.Create(activity).Error; err != nil {
				return total, err
			}
			points += activity.PointsEarned
			total++
		}

		if err := db.Model(user).Update("total_points", points).Error; err != nil {
			return total, err
		}
	}
	return total, nil
}

func seedWorkouts(db *gorm.DB) (int, error) {
	workouts := []*entity.Workout{
		{
			Name:            "Superhero Strength Training",
			Description:     "Build strength like a superhero",
			DifficultyLevel: entity.FitnessAdvanced,
			Category:        entity.CategoryStrength,
			Duration:        60,
			Exercises: entity.ExerciseList{
				{Name: "Bench Press", Sets: 4, Reps: 10},
				{Name: "Squats", Sets: 4, Reps: 12},
				{Name: "Deadlifts", Sets: 3, Reps: 8},
				{Name: "Pull-ups", Sets: 3, Reps: 10},
			},
			EquipmentNeeded: entity.StringList{"barbell", "pull-up bar"},
			TargetMuscles:   entity.StringList{"chest", "legs", "back"},
		},
		{
			Name:            "Speed Training",
			Description:     "Improve your speed and agility",
			DifficultyLevel: entity.FitnessIntermediate,
			Category:        entity.CategoryCardio,
			Duration:        45,
			Exercises: entity.ExerciseList{
				{Name: "Sprint Intervals", Sets: 6, DurationSeconds: 30},
				{Name: "High Knees", Sets: 3, Reps: 20},
				{Name: "Burpees", Sets: 3, Reps: 15},
				{Name: "Jump Rope", Sets: 3, DurationSeconds: 120},
			},
			EquipmentNeeded: entity.StringList{"jump rope"},
			TargetMuscles:   entity.StringList{"legs", "core"},
		},
		{
			Name:            "Flexibility Flow",
			Description:     "Improve flexibility and recovery",
			DifficultyLevel: entity.FitnessBeginner,
			Category:        entity.CategoryFlexibility,
			Duration:        30,
			Exercises: entity.ExerciseList{
				{Name: "Cat-Cow Stretch", Sets: 3, Reps: 10},
				{Name: "Downward Dog", Sets: 3, DurationSeconds: 30},
				{Name: "Pigeon Pose", Sets: 2, DurationSeconds: 60},
				{Name: "Seated Forward Fold", Sets: 3, DurationSeconds: 45},
			},
			EquipmentNeeded: entity.StringList{"yoga mat"},
			TargetMuscles:   entity.StringList{"back", "hips", "hamstrings"},
		},
		{
			Name:            "Hero Endurance",
			Description:     "Build endurance for long missions",
			DifficultyLevel: entity.FitnessIntermediate,
			Category:        entity.CategoryCardio,
			Duration:        75,
			Exercises: entity.ExerciseList{
				{Name: "Steady State Run", Sets: 1, DurationSeconds: 1800},
				{Name: "Cycling", Sets: 1, DurationSeconds: 1200},
				{Name: "Rowing", Sets: 1, DurationSeconds: 900},
				{Name: "Cool Down Walk", Sets: 1, DurationSeconds: 600},
			},
			EquipmentNeeded: entity.StringList{"bike", "rowing machine"},
			TargetMuscles:   entity.StringList{"legs", "core", "back"},
		},
		{
			Name:            "Core Balance Basics",
			Description:     "Stability work for beginners",
			DifficultyLevel: entity.FitnessBeginner,
			Category:        entity.CategoryBalance,
			Duration:        25,
			Exercises: entity.ExerciseList{
				{Name: "Plank", Sets: 3, DurationSeconds: 45},
				{Name: "Single-Leg Stand", Sets: 3, DurationSeconds: 30},
				{Name: "Bird Dog", Sets: 3, Reps: 12},
			},
			EquipmentNeeded: entity.StringList{"yoga mat"},
			TargetMuscles:   entity.StringList{"core", "glutes"},
		},
		{
			Name:            "HIIT Blitz",
			Description:     "Short all-out interval session",
			DifficultyLevel: entity.FitnessAdvanced,
			Category:        entity.CategoryHIIT,
			Duration:        20,
			Exercises: entity.ExerciseList{
				{Name: "Mountain Climbers", Sets: 4, DurationSeconds: 40},
				{Name: "Jump Squats", Sets: 4, Reps: 15},
				{Name: "Push-up Burpees", Sets: 4, Reps: 10},
			},
			EquipmentNeeded: entity.StringList{},
			TargetMuscles:   entity.StringList{"full body"},
		},
	}

	for _, workout := range workouts {
		if err := db.Create(workout).Error; err != nil {
			return 0, err
		}
	}
	return len(workouts), nil
}
