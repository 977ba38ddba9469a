package elasticsearch

// PresentationIndexMapping defines the Elasticsearch mapping for the presentations index.
// Titles and descriptions are full text; ids, conference and year are keywords so the
// index can be filtered and aggregated per conference and year.
const PresentationIndexMapping = `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 1,
    "analysis": {
      "analyzer": {
        "default": {
          "type": "standard"
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "id": {
        "type": "keyword"
      },
      "conferenceId": {
        "type": "keyword"
      },
      "conferenceName": {
        "type": "text",
        "fields": {
          "keyword": {
            "type": "keyword",
            "ignore_above": 256
          }
        }
      },
      "year": {
        "type": "keyword"
      },
      "title": {
        "type": "text",
        "fields": {
          "keyword": {
            "type": "keyword",
            "ignore_above": 256
          }
        }
      },
      "description": {
        "type": "text"
      },
      "rateCount": {
        "type": "integer"
      },
      "averageRate": {
        "type": "float"
      },
      "commentCount": {
        "type": "integer"
      }
    }
  }
}`
