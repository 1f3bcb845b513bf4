package flux

import (
	"testing"
)

func TestParseQueueConfig(t *testing.T) {
	config := `{
	  "queues": {
	    "batch": {"policy": {"limits": {"duration": "8h"}}},
	    "debug": {"policy": {"limits": {"duration": 3600}}},
	    "gpu": {"policy": {}},
	    "plain": {}
	  }
	}`
	limits, err := parseQueueConfig([]byte(config))
	if err != nil {
		t.Fatal(err)
	}
	if limits["batch"] != "8h" {
		t.Fatalf("batch: %q", limits["batch"])
	}
	if limits["debug"] != "3600" {
		t.Fatalf("debug: %q", limits["debug"])
	}
	if limits["gpu"] != "UNKNOWN" || limits["plain"] != "UNKNOWN" {
		t.Fatalf("missing policy must map to UNKNOWN: gpu=%q plain=%q", limits["gpu"], limits["plain"])
	}
}

func TestParseQueueConfigNoQueues(t *testing.T) {
	limits, err := parseQueueConfig([]byte(`{"exec": {}}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(limits) != 0 {
		t.Fatalf("no queues section: got %v", limits)
	}
	// Malformed configuration is a transport-level failure, not a default.
	if _, err := parseQueueConfig([]byte(`nonsense`)); err == nil {
		t.Fatal("malformed config must be an error")
	}
}

func TestParseJobList(t *testing.T) {
	listing := `{
	  "jobs": [
	    {
	      "id": 282682531905536,
	      "userid": 1001,
	      "name": "sim",
	      "state": "INACTIVE",
	      "result": 1,
	      "t_submit": 1722844867.01,
	      "t_depend": 1722844867.11,
	      "t_run": 1722844868.1,
	      "t_inactive": 1722844899.6,
	      "nnodes": 2,
	      "ntasks": 8,
	      "nodelist": "node[1-2]",
	      "success": true,
	      "waitstatus": 0
	    },
	    {
	      "id": 282682531905537
	    }
	  ]
	}`
	jobs, err := parseJobList([]byte(listing))
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs", len(jobs))
	}
	j := jobs[0]
	if j.ID != 282682531905536 {
		t.Fatalf("id: %d", j.ID)
	}
	if j.UserID == nil || *j.UserID != 1001 {
		t.Fatalf("userid: %v", j.UserID)
	}
	if j.Result == nil || *j.Result != 1 {
		t.Fatalf("result: %v", j.Result)
	}
	if j.TSubmit == nil || *j.TSubmit != 1722844867.01 {
		t.Fatalf("t_submit: %v", j.TSubmit)
	}
	if j.NodeList == nil || *j.NodeList != "node[1-2]" {
		t.Fatalf("nodelist: %v", j.NodeList)
	}

	// The second job reported nothing optional; everything must be nil.
	j = jobs[1]
	if j.UserID != nil || j.Result != nil || j.TSubmit != nil || j.State != nil {
		t.Fatalf("bare job must have nil optionals: %+v", j)
	}

	if _, err := parseJobList([]byte(`[]`)); err == nil {
		t.Fatal("a listing that is not an object must be an error")
	}
}
