package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

type Repos struct {
	Church           repos.ChurchRepo
	StaffUser        repos.StaffUserRepo
	Member           repos.MemberRepo
	Attendance       repos.AttendanceRepo
	Group            repos.GroupRepo
	Song             repos.SongRepo
	ServicePlan      repos.ServicePlanRepo
	LiveStream       repos.LiveStreamRepo
	Expense          repos.ExpenseRepo
	GeneratedContent repos.GeneratedContentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Church:           repos.NewChurchRepo(db, log),
		StaffUser:        repos.NewStaffUserRepo(db, log),
		Member:           repos.NewMemberRepo(db, log),
		Attendance:       repos.NewAttendanceRepo(db, log),
		Group:            repos.NewGroupRepo(db, log),
		Song:             repos.NewSongRepo(db, log),
		ServicePlan:      repos.NewServicePlanRepo(db, log),
		LiveStream:       repos.NewLiveStreamRepo(db, log),
		Expense:          repos.NewExpenseRepo(db, log),
		GeneratedContent: repos.NewGeneratedContentRepo(db, log),
	}
}
