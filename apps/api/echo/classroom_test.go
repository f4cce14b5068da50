package echoapi_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	echoapi "github.com/upperenglish/backend/apps/api/echo"
	"github.com/upperenglish/backend/core/classroom"
)

func seedClassroom(t *testing.T, env *testEnv, i int) classroom.Classroom {
	t.Helper()

	return env.createClassroom(t, classroom.Classroom{
		Teacher:  classroom.TeacherRef{ID: "t1", Name: "Ms Smith"},
		Students: []classroom.StudentRef{{ID: "s1", Name: "JOHN DOE", Present: true}},
		Unit:     3,
		Page:     40 + i,
		LastWord: fmt.Sprintf("word-%02d", i),
		DateTime: time.Date(2021, 5, 1, 10, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		DateShow: fmt.Sprintf("2021-05-%02d", i+1),
	})
}

func listPath(search, after, before string) string {
	v := make(url.Values)
	if search != "" {
		v.Add("search", search)
	}
	if after != "" {
		v.Add("after", after)
	}
	if before != "" {
		v.Add("before", before)
	}
	if len(v) == 0 {
		return "/protected/listClassrooms"
	}
	return "/protected/listClassrooms?" + v.Encode()
}

func (env *testEnv) getListPage(t *testing.T, path string) echoapi.ClassroomListResponse {
	t.Helper()

	tt := httpTest{path: path, auth: true, wantCode: http.StatusOK}
	req, rec := env.newRequest(t, tt)
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)

	var resp echoapi.ClassroomListResponse
	decodeBody(t, rec, &resp)
	return resp
}

func Test_classroomApi_register(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Valid record", func(t *testing.T) {
		body := marshallObj(t, classroom.NewClassroom{
			Teacher:       classroom.TeacherRef{ID: "t1", Name: "Ms Smith"},
			Students:      []classroom.StudentRef{{ID: "s1", Name: "JOHN DOE", Present: true}},
			Unit:          3,
			Page:          41,
			LastWord:      " wooden ",
			LastDictation: "spoon",
			DateTime:      time.Date(2021, 5, 10, 10, 0, 0, 0, time.UTC),
			DateShow:      "2021-05-10",
			Group:         &classroom.GroupRef{ID: "g1", Name: "CLASS A"},
		})
		tt := httpTest{method: http.MethodPost, path: "/protected/registerClassroom", body: body, auth: true,
			wantCode: http.StatusCreated}
		req, rec := env.newRequest(t, tt)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)

		var resp echoapi.ClassroomResponse
		decodeBody(t, rec, &resp)
		if resp.Classroom.ID == "" {
			t.Error("expected a generated id")
		}
		if resp.Classroom.LastWord != "wooden" {
			t.Errorf("LastWord = %q; want %q", resp.Classroom.LastWord, "wooden")
		}
	})

	t.Run("No attendees rejected", func(t *testing.T) {
		body := marshallObj(t, map[string]interface{}{
			"teacher":  classroom.TeacherRef{ID: "t1", Name: "Ms Smith"},
			"unit":     3,
			"page":     41,
			"lastWord": "wooden",
			"dateTime": time.Date(2021, 5, 10, 10, 0, 0, 0, time.UTC),
			"dateShow": "2021-05-10",
		})
		tt := httpTest{method: http.MethodPost, path: "/protected/registerClassroom", body: body, auth: true,
			wantCode: http.StatusBadRequest, wantData: []byte(`{"students":"this field is required"}`)}
		req, rec := env.newRequest(t, tt)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_classroomApi_list_pagination(t *testing.T) {
	env := newTestEnv(t)

	const total = 20
	for i := 0; i < total; i++ {
		seedClassroom(t, env, i)
	}

	// walk forward; every record must be visited exactly once
	seen := make(map[string]bool)
	var pages []echoapi.ClassroomListResponse

	after := ""
	for {
		page := env.getListPage(t, listPath("", after, ""))
		if page.Total != total {
			t.Errorf("Total = %d; want %d", page.Total, total)
		}
		for _, cls := range page.Classrooms {
			if seen[cls.ID] {
				t.Errorf("record %s served twice", cls.ID)
			}
			seen[cls.ID] = true
		}
		pages = append(pages, page)
		if page.After == "" {
			break
		}
		after = page.After
	}

	if len(seen) != total {
		t.Errorf("visited %d records; want %d", len(seen), total)
	}
	if wantPages := 3; len(pages) != wantPages {
		t.Fatalf("pages = %d; want %d", len(pages), wantPages)
	}
	if n := len(pages[0].Classrooms); n != classroom.PageSize {
		t.Errorf("page 1 size = %d; want %d", n, classroom.PageSize)
	}
	if n := len(pages[2].Classrooms); n != total-2*classroom.PageSize {
		t.Errorf("page 3 size = %d; want %d", n, total-2*classroom.PageSize)
	}
	if pages[0].Before != "" {
		t.Errorf("page 1 Before = %q; want empty", pages[0].Before)
	}

	// newest first
	first := pages[0].Classrooms[0]
	if first.LastWord != "word-19" {
		t.Errorf("first record = %q; want %q", first.LastWord, "word-19")
	}

	// navigating back from page 2 reproduces page 1
	back := env.getListPage(t, listPath("", "", pages[1].Before))
	if len(back.Classrooms) != len(pages[0].Classrooms) {
		t.Fatalf("back page size = %d; want %d", len(back.Classrooms), len(pages[0].Classrooms))
	}
	for i, cls := range back.Classrooms {
		if cls.ID != pages[0].Classrooms[i].ID {
			t.Errorf("back page record %d = %s; want %s", i, cls.ID, pages[0].Classrooms[i].ID)
		}
	}
}

func Test_classroomApi_list_search(t *testing.T) {
	env := newTestEnv(t)

	env.createClassroom(t, classroom.Classroom{
		Teacher:  classroom.TeacherRef{ID: "t1", Name: "Ms Smith"},
		Students: []classroom.StudentRef{{ID: "s1", Name: "JOHN DOE", Present: true}},
		Unit:     3, Page: 41,
		LastWord: "wooden spoon",
		DateTime: time.Date(2021, 5, 10, 10, 0, 0, 0, time.UTC),
		DateShow: "2021-05-10",
	})
	env.createClassroom(t, classroom.Classroom{
		Teacher:  classroom.TeacherRef{ID: "t2", Name: "Mr Woodhouse"},
		Students: []classroom.StudentRef{{ID: "s2", Name: "JANE ROE", Present: true}},
		Unit:     4, Page: 52,
		LastWord: "kettle",
		DateTime: time.Date(2021, 5, 11, 10, 0, 0, 0, time.UTC),
		DateShow: "2021-05-11",
	})
	env.createClassroom(t, classroom.Classroom{
		Teacher:  classroom.TeacherRef{ID: "t1", Name: "Ms Smith"},
		Students: []classroom.StudentRef{{ID: "s1", Name: "JOHN DOE", Present: false}},
		Unit:     5, Page: 63,
		LastWord: "basket",
		DateTime: time.Date(2021, 5, 12, 10, 0, 0, 0, time.UTC),
		DateShow: "2021-05-12",
	})

	tests := []struct {
		name      string
		search    string
		wantTotal int
	}{
		{"No term matches all", "", 3},
		{"Last word and teacher name", "wood", 2},
		{"Attendee name", "john", 2},
		{"Page number", "52", 1},
		{"Date", "2021-05-12", 1},
		{"Unknown term", "zebra", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := env.getListPage(t, listPath(tt.search, "", ""))
			if page.Total != tt.wantTotal {
				t.Errorf("Total = %d; want %d", page.Total, tt.wantTotal)
			}
			if len(page.Classrooms) != tt.wantTotal {
				t.Errorf("page size = %d; want %d", len(page.Classrooms), tt.wantTotal)
			}
		})
	}

	t.Run("Malformed cursor", func(t *testing.T) {
		tt := httpTest{path: "/protected/listClassrooms?after=garbage", auth: true,
			wantCode: http.StatusBadRequest}
		req, rec := env.newRequest(t, tt)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_classroomApi_listByStudent(t *testing.T) {
	env := newTestEnv(t)

	env.createClassroom(t, classroom.Classroom{
		Teacher:  classroom.TeacherRef{ID: "t1", Name: "Ms Smith"},
		Students: []classroom.StudentRef{{ID: "s1", Name: "JOHN DOE", Present: true}},
		Unit:     3, Page: 41,
		LastWord: "wooden",
		DateTime: time.Date(2021, 5, 10, 10, 0, 0, 0, time.UTC),
		DateShow: "2021-05-10",
	})
	env.createClassroom(t, classroom.Classroom{
		Teacher:  classroom.TeacherRef{ID: "t1", Name: "Ms Smith"},
		Students: []classroom.StudentRef{{ID: "s2", Name: "JANE ROE", Present: true}},
		Unit:     4, Page: 52,
		LastWord: "kettle",
		DateTime: time.Date(2021, 5, 11, 10, 0, 0, 0, time.UTC),
		DateShow: "2021-05-11",
	})
	env.createClassroom(t, classroom.Classroom{
		Teacher:  classroom.TeacherRef{ID: "t1", Name: "Ms Smith"},
		Students: []classroom.StudentRef{{ID: "s1", Name: "JOHN DOE", Present: false}},
		Unit:     5, Page: 63,
		LastWord: "basket",
		DateTime: time.Date(2021, 5, 12, 10, 0, 0, 0, time.UTC),
		DateShow: "2021-05-12",
	})

	t.Run("Missing student param", func(t *testing.T) {
		tt := httpTest{path: "/protected/listClassroomsByStudent", auth: true,
			wantCode: http.StatusBadRequest, wantData: []byte(`{"student":"this field is required"}`)}
		req, rec := env.newRequest(t, tt)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Sessions mentioning the student", func(t *testing.T) {
		tt := httpTest{path: "/protected/listClassroomsByStudent?student=JOHN+DOE", auth: true,
			wantCode: http.StatusOK}
		req, rec := env.newRequest(t, tt)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)

		var resp echoapi.StudentClassroomListResponse
		decodeBody(t, rec, &resp)
		if resp.Total != 2 {
			t.Fatalf("Total = %d; want 2", resp.Total)
		}
		// newest first: the absence comes before the attendance
		newest, oldest := resp.Classrooms[0], resp.Classrooms[1]
		if newest.Student != "JOHN DOE" || oldest.Student != "JOHN DOE" {
			t.Errorf("Student echoed = %q, %q; want %q", newest.Student, oldest.Student, "JOHN DOE")
		}
		if newest.Present == nil || *newest.Present {
			t.Errorf("newest Present = %v; want false", newest.Present)
		}
		if oldest.Present == nil || !*oldest.Present {
			t.Errorf("oldest Present = %v; want true", oldest.Present)
		}
	})
}

func Test_classroomApi_destroy(t *testing.T) {
	env := newTestEnv(t)
	cls := seedClassroom(t, env, 0)

	tests := []httpTest{
		{
			name: "Unknown id", method: http.MethodDelete, path: "/protected/deleteClassroom?id=nope", auth: true,
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "Deleted", method: http.MethodDelete, path: "/protected/deleteClassroom?id=" + cls.ID, auth: true,
			wantCode: http.StatusAccepted, wantData: marshallObj(t, echoapi.DeletedResponse{Message: "deleted"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := env.newRequest(t, tt)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_classroomApi_snapshotSurvivesStudentDeletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	std := env.createStudent(t, "ida")
	env.createClassroom(t, classroom.Classroom{
		Teacher:  classroom.TeacherRef{ID: "t1", Name: "Ms Smith"},
		Students: []classroom.StudentRef{{ID: std.ID, Name: std.Name, Present: true}},
		Unit:     3, Page: 41,
		LastWord: "wooden",
		DateTime: time.Date(2021, 5, 10, 10, 0, 0, 0, time.UTC),
		DateShow: "2021-05-10",
	})

	if err := env.studentRepo.DeleteStudent(ctx, std.ID); err != nil {
		t.Fatalf("DeleteStudent(): %v", err)
	}

	page := env.getListPage(t, listPath("", "", ""))
	if page.Total != 1 {
		t.Fatalf("Total = %d; want 1", page.Total)
	}
	attendees := page.Classrooms[0].Students
	if len(attendees) != 1 || attendees[0].Name != "IDA" {
		t.Errorf("snapshot attendees = %v; want the deleted student retained", attendees)
	}
}
