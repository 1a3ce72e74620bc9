package services

import (
	"testing"
	"time"

	"github.com/shreyasboddani/MENTICS/internal/models"
	"github.com/shreyasboddani/MENTICS/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestPointsFor_Rules(t *testing.T) {
	require.Equal(t, 10, PointsFor(models.Task{Description: "Read a chapter", Type: models.TypeStandard}))
	require.Equal(t, 25, PointsFor(models.Task{Description: "Update your GPA", Type: models.TypeMilestone}))
	require.Equal(t, 100, PointsFor(models.Task{Description: "Boss Battle: Take a full practice test", Type: models.TypeMilestone}))
	require.Equal(t, 100, PointsFor(models.Task{Description: "BOSS BATTLE: all caps", Type: models.TypeStandard}))
	// mention mid-description is not a boss battle
	require.Equal(t, 10, PointsFor(models.Task{Description: "Prepare for the Boss Battle: review notes", Type: models.TypeStandard}))
}

func stubNow(t *testing.T, iso string) {
	t.Helper()
	fixed, err := time.Parse("2006-01-02", iso)
	require.NoError(t, err)
	orig := nowFn
	nowFn = func() time.Time { return fixed.Add(12 * time.Hour) }
	t.Cleanup(func() { nowFn = orig })
}

func TestApplyCompletion_FirstEver(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	svc := NewGamificationService(db)
	stubNow(t, "2026-03-10")

	points, err := svc.ApplyCompletion(db, 1, models.Task{Description: "d", Type: models.TypeStandard}, "")
	require.NoError(t, err)
	require.Equal(t, 10, points)

	row, err := svc.Stats(1)
	require.NoError(t, err)
	require.Equal(t, 10, row.Points)
	require.Equal(t, 1, row.CurrentStreak)
	require.NotNil(t, row.LastCompletedDate)
	require.Equal(t, "2026-03-10", *row.LastCompletedDate)
}

func TestApplyCompletion_SameDayKeepsStreak(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	svc := NewGamificationService(db)
	stubNow(t, "2026-03-10")

	today := "2026-03-10"
	require.NoError(t, db.Create(&models.GamificationStats{
		UserID: 1, Points: 50, CurrentStreak: 4, LastCompletedDate: &today,
	}).Error)

	_, err = svc.ApplyCompletion(db, 1, models.Task{Description: "d", Type: models.TypeMilestone}, "")
	require.NoError(t, err)

	row, err := svc.Stats(1)
	require.NoError(t, err)
	require.Equal(t, 75, row.Points)
	require.Equal(t, 4, row.CurrentStreak)
}

func TestApplyCompletion_NextDayExtendsStreak(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	svc := NewGamificationService(db)
	stubNow(t, "2026-03-11")

	yesterday := "2026-03-10"
	require.NoError(t, db.Create(&models.GamificationStats{
		UserID: 1, Points: 0, CurrentStreak: 4, LastCompletedDate: &yesterday,
	}).Error)

	_, err = svc.ApplyCompletion(db, 1, models.Task{Description: "d", Type: models.TypeStandard}, "")
	require.NoError(t, err)

	row, err := svc.Stats(1)
	require.NoError(t, err)
	require.Equal(t, 5, row.CurrentStreak)
	require.Equal(t, "2026-03-11", *row.LastCompletedDate)
}

func TestApplyCompletion_GapResetsStreak(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	svc := NewGamificationService(db)
	stubNow(t, "2026-03-20")

	old := "2026-03-10"
	require.NoError(t, db.Create(&models.GamificationStats{
		UserID: 1, Points: 200, CurrentStreak: 9, LastCompletedDate: &old,
	}).Error)

	_, err = svc.ApplyCompletion(db, 1, models.Task{Description: "d", Type: models.TypeStandard}, "")
	require.NoError(t, err)

	row, err := svc.Stats(1)
	require.NoError(t, err)
	require.Equal(t, 1, row.CurrentStreak)
	// points never decrease
	require.Equal(t, 210, row.Points)
}

func TestComputeAchievements_Thresholds(t *testing.T) {
	none := ComputeAchievements(AchievementInputs{})
	require.Len(t, none, 9)
	for _, a := range none {
		require.False(t, a.IsEarned, a.ID)
	}

	earned := ComputeAchievements(AchievementInputs{
		CompletedTasks:     10,
		Points:             100,
		Streak:             3,
		HasTestPrepPath:    true,
		HasCollegePlanPath: false,
	})
	byID := map[string]bool{}
	for _, a := range earned {
		byID[a.ID] = a.IsEarned
	}
	require.True(t, byID["pioneer_test"])
	require.False(t, byID["planner_college"])
	require.True(t, byID["first_step"])
	require.True(t, byID["task_master_10"])
	require.False(t, byID["pathfinder_pro_25"])
	require.True(t, byID["streak_3"])
	require.False(t, byID["streak_7"])
	require.True(t, byID["points_100"])
	require.False(t, byID["points_500"])
}

func TestAchievements_DerivedFromStore(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	svc := NewGamificationService(db)

	require.NoError(t, db.Create(&models.User{ID: 1, Email: "a@b.c", Password: "x"}).Error)
	for i := 0; i < 10; i++ {
		require.NoError(t, db.Create(&models.Task{
			UserID: 1, Category: models.CategoryTestPrep, GenerationID: "g1",
			TaskOrder: i + 1, Description: "t", IsCompleted: true,
		}).Error)
	}
	require.NoError(t, db.Create(&models.GamificationStats{UserID: 1, Points: 120, CurrentStreak: 2}).Error)

	achievements, err := svc.Achievements(1)
	require.NoError(t, err)
	byID := map[string]bool{}
	for _, a := range achievements {
		byID[a.ID] = a.IsEarned
	}
	require.True(t, byID["task_master_10"])
	require.True(t, byID["points_100"])
	require.False(t, byID["streak_3"])
	require.True(t, byID["pioneer_test"])
	require.False(t, byID["planner_college"])
}
