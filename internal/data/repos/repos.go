package repos

import (
	"github.com/yungbote/shepherd-backend/internal/data/repos/content"
	"github.com/yungbote/shepherd-backend/internal/data/repos/finance"
	"github.com/yungbote/shepherd-backend/internal/data/repos/music"
	"github.com/yungbote/shepherd-backend/internal/data/repos/people"
	"github.com/yungbote/shepherd-backend/internal/data/repos/streaming"
	"github.com/yungbote/shepherd-backend/internal/data/repos/tenancy"
)

type ChurchRepo = tenancy.ChurchRepo
type StaffUserRepo = tenancy.StaffUserRepo

type MemberRepo = people.MemberRepo
type MemberFilter = people.MemberFilter
type AttendanceRepo = people.AttendanceRepo
type GroupRepo = people.GroupRepo

type SongRepo = music.SongRepo
type ServicePlanRepo = music.ServicePlanRepo

type LiveStreamRepo = streaming.LiveStreamRepo

type ExpenseRepo = finance.ExpenseRepo
type ExpenseFilter = finance.ExpenseFilter

type GeneratedContentRepo = content.GeneratedContentRepo

var (
	NewChurchRepo           = tenancy.NewChurchRepo
	NewStaffUserRepo        = tenancy.NewStaffUserRepo
	NewMemberRepo           = people.NewMemberRepo
	NewAttendanceRepo       = people.NewAttendanceRepo
	NewGroupRepo            = people.NewGroupRepo
	NewSongRepo             = music.NewSongRepo
	NewServicePlanRepo      = music.NewServicePlanRepo
	NewLiveStreamRepo       = streaming.NewLiveStreamRepo
	NewExpenseRepo          = finance.NewExpenseRepo
	NewGeneratedContentRepo = content.NewGeneratedContentRepo
)
