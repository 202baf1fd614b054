package i18n

var tables = map[Language]map[Key]string{
	Vietnamese: {
		Dashboard: "Dashboard",
		Schedule:  "Lịch Tập",
		Nutrition: "Thực Đơn",
		Progress:  "Tiến Trình",
		Profile:   "Thông Tin Cá Nhân",

		SurveyTitle:        "Khảo Sát Cá Nhân Hóa",
		SurveySubtitle:     "Giúp chúng tôi hiểu rõ hơn về bạn để đưa ra chương trình phù hợp nhất",
		FitnessGoal:        "Mục tiêu tập luyện của bạn là gì?",
		LoseWeight:         "Giảm cân",
		GainMuscle:         "Tăng cơ",
		MaintainHealth:     "Duy trì sức khỏe",
		IncreaseStrength:   "Tăng sức mạnh",
		Experience:         "Kinh nghiệm tập luyện của bạn?",
		Beginner:           "Mới bắt đầu",
		Intermediate:       "Trung bình",
		Advanced:           "Nâng cao",
		TimeAvailable:      "Bạn có thể dành bao nhiêu thời gian mỗi ngày?",
		Minutes:            "phút",
		HealthConcerns:     "Bạn có vấn đề sức khỏe nào cần lưu ý?",
		None:               "Không",
		BackPain:           "Đau lưng",
		KneePain:           "Đau đầu gối",
		HeartCondition:     "Vấn đề tim mạch",
		Other:              "Khác",
		TrainerGender:      "Bạn muốn được hướng dẫn bởi huấn luyện viên nam hay nữ?",
		Male:               "Nam",
		Female:             "Nữ",
		NoPreference:       "Không quan trọng",
		SubmitSurvey:       "Hoàn Thành Khảo Sát",
		Next:               "Tiếp theo",
		Previous:           "Quay lại",
		SurveySuccessTitle: "Thành công!",
		SurveySuccessBody:  "Cảm ơn bạn đã hoàn thành khảo sát. Chúng tôi sẽ tạo chương trình phù hợp cho bạn.",
		ErrorTitle:         "Lỗi",
		ErrorBody:          "Có lỗi xảy ra. Vui lòng thử lại.",

		PersonalInfo:  "Thông tin cá nhân",
		TodaySchedule: "Lịch tập hôm nay",
		TodayMenu:     "Thực đơn hôm nay",
		CurrentWeight: "Cân nặng",
		BodyFat:       "Tỷ lệ mỡ",

		Breakfast:      "Bữa sáng",
		Lunch:          "Bữa trưa",
		Dinner:         "Bữa chiều",
		Snack:          "Bữa tối",
		TotalCalories:  "Tổng calo hôm nay",
		TargetCalories: "Mục tiêu",
		ProteinLabel:   "Protein",
		CarbsLabel:     "Carbs",
		FatLabel:       "Chất béo",

		ThisWeek:   "Lịch tập tuần này",
		Completed:  "Hoàn thành",
		Rest:       "Nghỉ ngơi",
		NewSession: "Buổi tập mới",

		WeightProgress: "Cân nặng",
		MuscleGain:     "Khối lượng cơ",
		AddNewPhoto:    "Thêm ảnh mới",
		Trend:          "Xu hướng",

		Login:               "Đăng nhập",
		Logout:              "Đăng xuất",
		Email:               "Email",
		Password:            "Mật khẩu",
		Loading:             "Đang tải...",
		NoData:              "Chưa có dữ liệu",
		RecommendedTrainers: "Huấn luyện viên phù hợp",

		PaymentHistory: "Lịch sử thanh toán",
		TotalPaid:      "Đã thanh toán",
	},
	English: {
		Dashboard: "Dashboard",
		Schedule:  "Schedule",
		Nutrition: "Nutrition",
		Progress:  "Progress",
		Profile:   "Profile",

		SurveyTitle:        "Personal Assessment",
		SurveySubtitle:     "Help us understand you better to create the most suitable program",
		FitnessGoal:        "What is your fitness goal?",
		LoseWeight:         "Lose Weight",
		GainMuscle:         "Gain Muscle",
		MaintainHealth:     "Maintain Health",
		IncreaseStrength:   "Increase Strength",
		Experience:         "What's your training experience?",
		Beginner:           "Beginner",
		Intermediate:       "Intermediate",
		Advanced:           "Advanced",
		TimeAvailable:      "How much time can you dedicate daily?",
		Minutes:            "minutes",
		HealthConcerns:     "Do you have any health concerns?",
		None:               "None",
		BackPain:           "Back Pain",
		KneePain:           "Knee Pain",
		HeartCondition:     "Heart Condition",
		Other:              "Other",
		TrainerGender:      "Do you prefer a male or female trainer?",
		Male:               "Male",
		Female:             "Female",
		NoPreference:       "No Preference",
		SubmitSurvey:       "Complete Survey",
		Next:               "Next",
		Previous:           "Previous",
		SurveySuccessTitle: "Success!",
		SurveySuccessBody:  "Thank you for completing the survey. We'll create a personalized program for you.",
		ErrorTitle:         "Error",
		ErrorBody:          "An error occurred. Please try again.",

		PersonalInfo:  "Personal Information",
		TodaySchedule: "Today's Schedule",
		TodayMenu:     "Today's Menu",
		CurrentWeight: "Current Weight",
		BodyFat:       "Body Fat",

		Breakfast:      "Breakfast",
		Lunch:          "Lunch",
		Dinner:         "Dinner",
		Snack:          "Snack",
		TotalCalories:  "Total Calories Today",
		TargetCalories: "Target",
		ProteinLabel:   "Protein",
		CarbsLabel:     "Carbs",
		FatLabel:       "Fat",

		ThisWeek:   "This Week's Schedule",
		Completed:  "Completed",
		Rest:       "Rest",
		NewSession: "New Session",

		WeightProgress: "Weight",
		MuscleGain:     "Muscle Mass",
		AddNewPhoto:    "Add New Photo",
		Trend:          "Trend",

		Login:               "Login",
		Logout:              "Logout",
		Email:               "Email",
		Password:            "Password",
		Loading:             "Loading...",
		NoData:              "No data yet",
		RecommendedTrainers: "Recommended Trainers",

		PaymentHistory: "Payment History",
		TotalPaid:      "Total Paid",
	},
}
